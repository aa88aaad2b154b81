// Package raster derives visual features from rasterized page screenshots:
// a dominant color palette and a vertical layout-rhythm score. Inputs are
// plain image.Image values so the package never touches the browser.
package raster

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

const (
	// Screenshots are downscaled to sampleSize x sampleSize before color
	// sampling to bound cost regardless of page height.
	sampleSize = 100

	// Every sampleStride-th pixel of the downscaled image is read.
	sampleStride = 10

	// Channel values are bucketed to multiples of bucketWidth, giving
	// 8 buckets per channel over the 0-255 range.
	bucketWidth = 32

	// PaletteSize is the maximum number of dominant colors returned.
	PaletteSize = 5
)

// Color is a quantized RGB triplet, each channel a multiple of the bucket
// width.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Quantize buckets an 8-bit channel value to its bucket floor.
func Quantize(v uint8) uint8 {
	return (v / bucketWidth) * bucketWidth
}

// Palette returns up to PaletteSize dominant colors of the image, most
// frequent first. Ties keep first-seen order so identical inputs always
// produce identical palettes.
func Palette(img image.Image) ([]Color, error) {
	if img == nil {
		return nil, fmt.Errorf("raster: nil image")
	}
	small := imaging.Resize(img, sampleSize, sampleSize, imaging.NearestNeighbor)
	bounds := small.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("raster: empty image")
	}

	counts := make(map[Color]int)
	var order []Color

	total := w * h
	for i := 0; i < total; i += sampleStride {
		x := bounds.Min.X + i%w
		y := bounds.Min.Y + i/w
		r, g, b, _ := small.At(x, y).RGBA()
		c := Color{
			R: Quantize(uint8(r >> 8)),
			G: Quantize(uint8(g >> 8)),
			B: Quantize(uint8(b >> 8)),
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > PaletteSize {
		order = order[:PaletteSize]
	}
	return order, nil
}
