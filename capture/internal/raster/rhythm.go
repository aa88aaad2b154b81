package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// Pixels darker than this greyscale brightness count as content edges.
	darkThreshold = 200

	// Gaps shorter than this are noise (anti-aliasing, borders) and are
	// not recorded.
	minGap = 10

	// DefaultRhythm is substituted when too few gaps were observed or
	// extraction failed upstream.
	DefaultRhythm = 5.0
)

// Rhythm scores the vertical spacing consistency of a page screenshot on a
// 0-10 scale. It samples vertical strips across the image, records the
// distances between dark transitions in each strip, and maps the relative
// variance of those gaps to a score: perfectly even spacing is 10.
//
// Fewer than two observed gaps mean the page has no measurable rhythm; the
// documented default of 5.0 is returned.
func Rhythm(img image.Image) (float64, error) {
	if img == nil {
		return DefaultRhythm, fmt.Errorf("raster: nil image")
	}
	grey := imaging.Grayscale(img)
	bounds := grey.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return DefaultRhythm, fmt.Errorf("raster: empty image")
	}

	stride := w / 10
	if stride < 1 {
		stride = 1
	}

	var gaps []float64
	for x := bounds.Min.X; x < bounds.Max.X; x += stride {
		lastDark := -1
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			r, _, _, _ := grey.At(x, y).RGBA()
			if uint8(r>>8) >= darkThreshold {
				continue
			}
			if lastDark >= 0 {
				if d := y - lastDark; d > minGap {
					gaps = append(gaps, float64(d))
				}
			}
			lastDark = y
		}
	}

	if len(gaps) < 2 {
		return DefaultRhythm, nil
	}

	mean, variance := meanVariance(gaps)
	if mean == 0 {
		return DefaultRhythm, nil
	}
	return clamp(10-10*variance/(mean*mean), 0, 10), nil
}

// meanVariance returns the mean and population variance of the samples.
func meanVariance(xs []float64) (mean, variance float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return mean, variance
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
