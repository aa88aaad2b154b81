package experts

import (
	"fmt"

	"github.com/sitejury/sitejury/signals"
)

// ProductDetails carries the product designer's raw measurements.
type ProductDetails struct {
	PaletteSize     int     `json:"palette_size"`
	HeadingSizes    int     `json:"heading_sizes"`
	HeadingContrast float64 `json:"heading_contrast"`
	ModernFont      bool    `json:"modern_font"`
	PremiumMarkers  int     `json:"premium_markers"`
	HighResImages   int     `json:"high_res_images"`
	LayoutRhythm    float64 `json:"layout_rhythm"`
	SectionPaddings int     `json:"section_paddings"`
	SectionCount    int     `json:"section_count"`
}

func (ProductDetails) agentDetails() {}

type productDesigner struct{}

// NewProductDesigner returns the visual design panel member.
func NewProductDesigner() Evaluator { return productDesigner{} }

func (productDesigner) Agent() Agent { return ProductDesigner }

func (productDesigner) Evaluate(in Inputs) (Evaluation, error) {
	r := signals.NewReader(in.Query)
	sc := newScorecard(ProductDesigner.Base())

	palette := paletteSize(in)
	switch {
	case palette >= 3 && palette <= 8:
		sc.add(1.0, "deliberate color palette")
	case palette < 2:
		sc.cut(0.5, "page reads as a single flat color")
	}

	sizes := signals.HeadingSizes(r)
	contrast := sizeContrast(sizes)
	if len(sizes) >= 3 && contrast >= 1.5 {
		sc.add(1.0, "typographic hierarchy with clear size contrast")
	} else if len(sizes) > 0 && len(sizes) < 2 {
		sc.weaknesses = append(sc.weaknesses, "headings all render at the same size")
	}

	modern := signals.IsModernFontStack(signals.PrimaryFontFamily(r))
	if modern {
		sc.add(0.5, "contemporary typeface")
	}

	highRes := signals.HighResImageCount(r)
	premium := 0
	if signals.HasGradients(in.HTML) {
		premium++
	}
	if signals.HasShadows(in.HTML) {
		premium++
	}
	if signals.HasRoundedCorners(in.HTML) {
		premium++
	}
	if highRes >= 3 {
		premium++
	}
	switch {
	case premium >= 3:
		sc.add(1.5, "polished visual treatment: depth, radius and imagery")
	case premium >= 2:
		sc.add(0.75, "some premium visual markers")
	default:
		sc.weaknesses = append(sc.weaknesses, "flat, unstyled presentation")
	}

	rhythm := desktopRhythm(in)
	sc.bump(rhythm / 10 * 1.0)

	sections := signals.SectionCount(r)
	paddings := signals.DistinctSectionPaddings(r)
	if sections >= 3 && paddings > 0 && paddings <= 3 {
		sc.add(0.75, "consistent section spacing")
	}

	if r.Err != nil {
		return Evaluation{}, fmt.Errorf("experts: %s: %w", ProductDesigner, r.Err)
	}

	return sc.finish(ProductDesigner, ProductDetails{
		PaletteSize:     palette,
		HeadingSizes:    len(sizes),
		HeadingContrast: contrast,
		ModernFont:      modern,
		PremiumMarkers:  premium,
		HighResImages:   highRes,
		LayoutRhythm:    rhythm,
		SectionPaddings: paddings,
		SectionCount:    sections,
	}), nil
}

func paletteSize(in Inputs) int {
	if in.Captures == nil {
		return 0
	}
	return len(in.Captures.Desktop.DominantColors)
}

// sizeContrast returns max/min over the sizes, or 0 without enough data.
func sizeContrast(sizes []float64) float64 {
	if len(sizes) < 2 {
		return 0
	}
	minS, maxS := sizes[0], sizes[0]
	for _, s := range sizes[1:] {
		if s < minS {
			minS = s
		}
		if s > maxS {
			maxS = s
		}
	}
	if minS == 0 {
		return 0
	}
	return maxS / minS
}
