package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"lbview/internal/lightbox"
)

// archiveSeparator joins an archive path and an entry name in an image URL.
const archiveSeparator = ":"

type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// Title returns the file name shown in the header for collected images.
func (p ImagePath) Title() string {
	if p.EntryPath != "" {
		return filepath.Base(p.EntryPath)
	}
	return filepath.Base(p.Path)
}

func isArchiveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// parseImageURL splits a viewer URL into its file or archive entry parts.
// "book.zip:pages/01.png" names an entry; anything else is a plain path.
func parseImageURL(url string) ImagePath {
	lower := strings.ToLower(url)
	for _, ext := range []string{".zip", ".rar", ".7z"} {
		i := strings.Index(lower, ext+archiveSeparator)
		if i < 0 {
			continue
		}
		archive := url[:i+len(ext)]
		entry := url[i+len(ext)+len(archiveSeparator):]
		if entry == "" {
			break
		}
		return ImagePath{Path: url, ArchivePath: archive, EntryPath: entry}
	}
	return ImagePath{Path: url}
}

// readImageBytes returns the encoded image for p.
func readImageBytes(p ImagePath) ([]byte, error) {
	if p.ArchivePath == "" {
		return os.ReadFile(p.Path)
	}

	ext := strings.ToLower(filepath.Ext(p.ArchivePath))
	switch ext {
	case ".zip":
		return readZipEntry(p.ArchivePath, p.EntryPath)
	case ".rar":
		return readRarEntry(p.ArchivePath, p.EntryPath)
	case ".7z":
		return read7zEntry(p.ArchivePath, p.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func decodeImage(data []byte, path string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// File collection functions

func archiveEntry(archivePath, name string) ImagePath {
	return ImagePath{
		Path:        archivePath + archiveSeparator + name,
		ArchivePath: archivePath,
		EntryPath:   name,
	}
}

func extractImagesFromZip(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, archiveEntry(archivePath, f.Name))
		}
	}
	return images, nil
}

func extractImagesFromRar(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, archiveEntry(archivePath, header.Name))
		}
	}
	return images, nil
}

func extractImagesFrom7z(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, archiveEntry(archivePath, f.Name))
		}
	}
	return images, nil
}

func processArchive(archivePath string) ([]ImagePath, error) {
	var (
		images []ImagePath
		err    error
	)

	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip":
		images, err = extractImagesFromZip(archivePath)
	case ".rar":
		images, err = extractImagesFromRar(archivePath)
	case ".7z":
		images, err = extractImagesFrom7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	return images, nil
}

// collectImages expands files, directories and archives into an ordered image
// list. Problematic archives are skipped with a warning.
func collectImages(args []string, sortMethod int) ([]ImagePath, error) {
	var list []ImagePath
	addArchive := func(path string, into *[]ImagePath) {
		archiveImages, err := processArchive(path)
		if err != nil {
			log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
			return
		}
		*into = append(*into, sortImagePaths(archiveImages, sortMethod)...)
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isSupportedExt(p) {
				list = append(list, ImagePath{Path: p})
			} else if isArchiveExt(p) {
				addArchive(p, &list)
			}
			continue
		}

		var dirImages []ImagePath
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if isSupportedExt(path) {
				dirImages = append(dirImages, ImagePath{Path: path})
			} else if isArchiveExt(path) {
				addArchive(path, &dirImages)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
		list = append(list, sortImagePaths(dirImages, sortMethod)...)
	}

	return list, nil
}

// loadManifest reads a JSON image list: an array whose elements are
// {"url", "title"} objects or plain URL strings. Relative URLs are resolved
// against the manifest's directory.
func loadManifest(path string) (lightbox.Images, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var images lightbox.Images
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, ref := range images {
		switch r := ref.(type) {
		case lightbox.Image:
			r.URL = resolveRelative(dir, r.URL)
			images[i] = r
		case lightbox.PlainURL:
			images[i] = lightbox.PlainURL(resolveRelative(dir, string(r)))
		}
	}
	return images, nil
}

func resolveRelative(dir, url string) string {
	if url == "" || filepath.IsAbs(url) {
		return url
	}
	return filepath.Join(dir, url)
}

// sourceOptions fills the image part of the viewer options from the command
// line: a manifest, a single image, or a collected list.
func sourceOptions(opts *lightbox.Options, args []string, manifest, title string, sortMethod int) error {
	if manifest != "" {
		images, err := loadManifest(manifest)
		if err != nil {
			return err
		}
		opts.Images = images
		return nil
	}

	if len(args) == 1 && isSupportedExt(args[0]) {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			opts.Image = args[0]
			opts.Title = title
			if opts.Title == "" {
				opts.Title = filepath.Base(args[0])
			}
			return nil
		}
	}

	paths, err := collectImages(args, sortMethod)
	if err != nil {
		return err
	}
	images := make(lightbox.Images, 0, len(paths))
	for _, p := range paths {
		images = append(images, lightbox.Image{URL: p.Path, Title: p.Title()})
	}
	opts.Images = images
	return nil
}
