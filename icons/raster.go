package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const defaultGlyphSize = 24 // used when a glyph's viewBox carries no size

// maxRasterDim caps rasterization output so a glyph with a runaway viewBox
// (user-supplied overrides go through here too) cannot allocate an absurd
// RGBA buffer.
const maxRasterDim = 2048

// Validate parses the SVG data and reports whether oksvg can render it.
func Validate(data []byte) error {
	_, err := oksvg.ReadIconStream(bytes.NewReader(data))
	return err
}

// Rasterize renders SVG data into an RGBA image fitting a size x size box
// while keeping the glyph's aspect ratio.
func Rasterize(data []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 {
		intrW = defaultGlyphSize
	}
	if intrH <= 0 {
		intrH = defaultGlyphSize
	}

	w, h := intrW, intrH
	if size > 0 {
		scale := math.Min(float64(size)/float64(intrW), float64(size)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	}
	w = max(w, 1)
	h = max(h, 1)

	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// Preview renders the glyph centered on a square white canvas, the shape
// preview tooling writes to disk.
func Preview(data []byte, size int) (image.Image, error) {
	if size <= 0 {
		size = defaultGlyphSize
	}
	img, err := Rasterize(data, size)
	if err != nil {
		return nil, err
	}
	canvas := imaging.New(size, size, color.White)
	return imaging.PasteCenter(canvas, imaging.Fit(img, size, size, imaging.Lanczos)), nil
}
