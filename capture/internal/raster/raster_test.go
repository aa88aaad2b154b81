package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestQuantize(t *testing.T) {
	// WHAT: channel quantization floors to bucket multiples of 32.
	// WHY: (200,100,50) must bucket to (192,96,32) for palette stability.
	cases := []struct{ in, want uint8 }{
		{200, 192}, {100, 96}, {50, 32}, {0, 0}, {31, 0}, {32, 32}, {255, 224},
	}
	for _, c := range cases {
		if got := Quantize(c.in); got != c.want {
			t.Errorf("Quantize(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPalette_DominantFirst(t *testing.T) {
	// WHAT: palette is frequency-descending with at most 5 entries.
	// WHY: downstream color-identity heuristics read the palette head.
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	fill := func(r image.Rectangle, c color.RGBA) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	// Three quarters one color, one quarter split between two others.
	fill(image.Rect(0, 0, 200, 150), color.RGBA{200, 100, 50, 255})
	fill(image.Rect(0, 150, 200, 200), color.RGBA{0, 0, 255, 255})
	fill(image.Rect(0, 150, 40, 200), color.RGBA{0, 255, 0, 255})

	pal, err := Palette(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(pal) == 0 || len(pal) > PaletteSize {
		t.Fatalf("palette size: got %d", len(pal))
	}
	if pal[0] != (Color{192, 96, 32}) {
		t.Errorf("dominant color: got %+v, want {192 96 32}", pal[0])
	}
}

func TestPalette_Deterministic(t *testing.T) {
	// WHAT: identical input rasters yield identical palettes.
	// WHY: the whole pipeline must be byte-deterministic per run inputs.
	img := image.NewRGBA(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 2), uint8(y * 2), 128, 255})
		}
	}
	a, err := Palette(img)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Palette(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("palette lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestColor_Hex(t *testing.T) {
	if got := (Color{192, 96, 32}).Hex(); got != "#c06020" {
		t.Errorf("hex: got %s", got)
	}
}

func TestRhythm_EvenStripesScoreHigh(t *testing.T) {
	// WHAT: perfectly regular dark bands approach a rhythm of 10.
	// WHY: zero gap variance is the calibration point of the metric.
	img := image.NewRGBA(image.Rect(0, 0, 100, 400))
	for y := 0; y < 400; y++ {
		c := color.RGBA{255, 255, 255, 255}
		if y%40 == 0 {
			c = color.RGBA{0, 0, 0, 255}
		}
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	score, err := Rhythm(img)
	if err != nil {
		t.Fatal(err)
	}
	if score < 9.5 {
		t.Errorf("even stripes: got %.2f, want >= 9.5", score)
	}
}

func TestRhythm_TooFewGapsDefaults(t *testing.T) {
	// WHAT: a blank page has no measurable rhythm and gets the 5.0 default.
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	score, err := Rhythm(img)
	if err != nil {
		t.Fatal(err)
	}
	if score != DefaultRhythm {
		t.Errorf("blank page: got %.2f, want %.1f", score, DefaultRhythm)
	}
}

func TestRhythm_Bounds(t *testing.T) {
	// WHAT: irregular spacing still lands inside [0,10].
	img := image.NewRGBA(image.Rect(0, 0, 100, 500))
	dark := []int{0, 15, 90, 110, 300, 320, 480}
	for y := 0; y < 500; y++ {
		c := color.RGBA{255, 255, 255, 255}
		for _, d := range dark {
			if y == d {
				c = color.RGBA{0, 0, 0, 255}
			}
		}
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	score, err := Rhythm(img)
	if err != nil {
		t.Fatal(err)
	}
	if score < 0 || score > 10 {
		t.Errorf("score out of range: %.2f", score)
	}
}
