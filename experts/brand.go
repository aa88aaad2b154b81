package experts

import (
	"fmt"

	"github.com/sitejury/sitejury/signals"
)

// BrandDetails carries the brand analyst's raw measurements.
type BrandDetails struct {
	Boilerplate      bool    `json:"boilerplate"`
	HasLogo          bool    `json:"has_logo"`
	IconCount        int     `json:"icon_count"`
	CustomPhotoRatio float64 `json:"custom_photo_ratio"`
	HighResImages    int     `json:"high_res_images"`
	StoryLanguage    bool    `json:"story_language"`
	HasTagline       bool    `json:"has_tagline"`
	PaletteSize      int     `json:"palette_size"`
	TemplateMarkers  bool    `json:"template_markers"`
}

func (BrandDetails) agentDetails() {}

// Template-marker checks only fire once the body is long enough to not be
// an honest placeholder page.
const templateGateMinBody = 300

type brandAnalyst struct{}

// NewBrandAnalyst returns the brand identity panel member.
func NewBrandAnalyst() Evaluator { return brandAnalyst{} }

func (brandAnalyst) Agent() Agent { return BrandAnalyst }

func (brandAnalyst) Evaluate(in Inputs) (Evaluation, error) {
	r := signals.NewReader(in.Query)
	sc := newScorecard(BrandAnalyst.Base())

	boiler := signals.HasBoilerplate(in.BodyText)
	if boiler {
		sc.cut(1.0, "copy leans on generic template phrases")
	} else {
		sc.add(0.5, "copy avoids boilerplate phrasing")
	}

	logo := signals.HasLogo(r)
	if logo {
		sc.add(0.5, "recognizable logo")
	}
	icons := signals.IconCount(r)
	if icons >= 5 {
		sc.add(0.5, "consistent icon system")
	}

	customRatio := signals.CustomPhotoRatio(r)
	highRes := signals.HighResImageCount(r)
	switch {
	case customRatio >= 0.8 && highRes >= 2:
		sc.add(1.0, "custom high-resolution photography")
	case customRatio >= 0.5:
		sc.add(0.5, "mostly original imagery")
	}

	story := signals.HasStoryLanguage(in.BodyText)
	tagline := signals.HasTagline(r) || signals.OgDescription(r) != ""
	switch {
	case story && tagline:
		sc.add(1.0, "clear brand narrative and tagline")
	case story || tagline:
		sc.add(0.5, "partial brand narrative")
	}

	palette := paletteSize(in)
	if palette >= 4 {
		sc.add(0.5, "rich color identity")
	}

	// Memorability: a custom hero with motion reads as intentional craft.
	if signals.HasHero(r) && customRatio >= 0.5 && signals.HasAnimation(in.HTML) {
		sc.add(0.5, "memorable hero treatment")
	}

	markers := false
	if len(in.BodyText) >= templateGateMinBody {
		markers = signals.HasTemplateMarkers(in.BodyText, in.HTML)
		if markers {
			sc.cut(1.0, "demo or placeholder content left in place")
		} else {
			sc.add(0.5, "no template leftovers")
		}
	}

	if r.Err != nil {
		return Evaluation{}, fmt.Errorf("experts: %s: %w", BrandAnalyst, r.Err)
	}

	return sc.finish(BrandAnalyst, BrandDetails{
		Boilerplate:      boiler,
		HasLogo:          logo,
		IconCount:        icons,
		CustomPhotoRatio: customRatio,
		HighResImages:    highRes,
		StoryLanguage:    story,
		HasTagline:       tagline,
		PaletteSize:      palette,
		TemplateMarkers:  markers,
	}), nil
}
