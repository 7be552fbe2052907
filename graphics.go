package main

import (
	"bytes"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	fontErr    error
)

// uiFontSource returns the shared UI font, loading it on first use. Image
// loaders call it from worker goroutines.
func uiFontSource() (*text.GoTextFaceSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	return fontSource, fontErr
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// truncateText shortens s to at most maxChars runes, marking the cut.
func truncateText(s string, maxChars int) string {
	runes := []rune(s)
	if maxChars < 4 || len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars-3]) + "..."
}

// CreateErrorImage creates the placeholder shown for an image that failed to
// load, naming the file and the reason.
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background

	// White border
	white := color.RGBA{255, 255, 255, 255}
	fw, fh := float64(width), float64(height)
	DrawFilledRect(errorImg, 0, 0, fw, 3, white)
	DrawFilledRect(errorImg, 0, fh-3, fw, 3, white)
	DrawFilledRect(errorImg, 0, 0, 3, fh, white)
	DrawFilledRect(errorImg, fw-3, 0, 3, fh, white)

	source, err := uiFontSource()
	if err != nil {
		return errorImg
	}
	errorFont := &text.GoTextFace{Source: source, Size: 20.0}

	// Rough estimate: 10px per character
	maxChars := (width - 20) / 10
	DrawText(errorImg, "ERROR", errorFont, 10, 30, white)
	DrawText(errorImg, truncateText("File: "+filepath.Base(filename), maxChars), errorFont, 10, 60, white)
	DrawText(errorImg, truncateText("Reason: "+errorMsg, maxChars), errorFont, 10, 90, white)

	return errorImg
}
