package main

import (
	"bytes"
	"fmt"
	"image"
	"sort"

	"github.com/rwcarlsen/goexif/exif"
)

// ImageInfo holds metadata shown in the info overlay.
type ImageInfo struct {
	Width    int
	Height   int
	Format   string
	Size     int64
	EXIFData map[string]string
}

// readImageInfo extracts dimensions and selected EXIF fields from encoded
// image data without decoding the pixels.
func readImageInfo(data []byte) (*ImageInfo, error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	info := &ImageInfo{
		Width:    config.Width,
		Height:   config.Height,
		Format:   format,
		Size:     int64(len(data)),
		EXIFData: make(map[string]string),
	}

	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// most formats carry no EXIF
		return info, nil
	}

	if camMake, err := exifData.Get(exif.Make); err == nil {
		if s, err := camMake.StringVal(); err == nil {
			info.EXIFData["Camera Make"] = s
		}
	}
	if camModel, err := exifData.Get(exif.Model); err == nil {
		if s, err := camModel.StringVal(); err == nil {
			info.EXIFData["Camera Model"] = s
		}
	}
	if taken, err := exifData.DateTime(); err == nil {
		info.EXIFData["Taken"] = taken.Format("2006-01-02 15:04:05")
	}
	if fNum, err := exifData.Get(exif.FNumber); err == nil {
		if numer, denom, err := fNum.Rat2(0); err == nil && denom != 0 {
			info.EXIFData["F-Number"] = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
		}
	}
	if expTime, err := exifData.Get(exif.ExposureTime); err == nil {
		if numer, denom, err := expTime.Rat2(0); err == nil {
			info.EXIFData["Exposure Time"] = fmt.Sprintf("%d/%d s", numer, denom)
		}
	}
	if iso, err := exifData.Get(exif.ISOSpeedRatings); err == nil {
		if v, err := iso.Int(0); err == nil {
			info.EXIFData["ISO"] = fmt.Sprintf("%d", v)
		}
	}

	return info, nil
}

// Lines formats the info for display, EXIF fields sorted by name.
func (i *ImageInfo) Lines() []string {
	lines := []string{
		fmt.Sprintf("%d x %d %s", i.Width, i.Height, i.Format),
		fmt.Sprintf("%.1f KB", float64(i.Size)/1024),
	}
	keys := make([]string, 0, len(i.EXIFData))
	for k := range i.EXIFData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+i.EXIFData[k])
	}
	return lines
}
