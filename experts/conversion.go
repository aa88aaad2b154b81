package experts

import (
	"fmt"

	"github.com/sitejury/sitejury/signals"
)

// ConversionDetails carries the conversion strategist's raw measurements.
type ConversionDetails struct {
	CTAMatches   int  `json:"cta_matches"`
	AboveFoldCTA bool `json:"above_fold_cta"`
	TrustGroups  int  `json:"trust_groups"`
	HasPhone     bool `json:"has_phone"`
	HasEmail     bool `json:"has_email"`
	HasForm      bool `json:"has_form"`
	FunnelSteps  int  `json:"funnel_steps"`
	PopupCount   int  `json:"popup_count"`
}

func (ConversionDetails) agentDetails() {}

type conversionStrategist struct{}

// NewConversionStrategist returns the conversion panel member.
func NewConversionStrategist() Evaluator { return conversionStrategist{} }

func (conversionStrategist) Agent() Agent { return ConversionStrategist }

func (conversionStrategist) Evaluate(in Inputs) (Evaluation, error) {
	r := signals.NewReader(in.Query)
	sc := newScorecard(ConversionStrategist.Base())

	ctaMatches := signals.CTAMatchCount(signals.CTATexts(r))
	switch {
	case ctaMatches >= 3:
		sc.add(1.5, "multiple strong calls to action")
	case ctaMatches >= 1:
		sc.add(0.75, "at least one strong call to action")
	default:
		sc.cut(0.75, "no action-oriented button or link text")
	}

	aboveFold := signals.AboveFoldCTA(r, desktopViewportHeight(in))
	if aboveFold {
		sc.add(1.0, "call to action visible without scrolling")
	}

	trust := signals.TrustGroupCount(in.BodyText)
	switch {
	case trust >= 3:
		sc.add(1.0, "layered trust signals")
	case trust >= 2:
		sc.add(0.5, "some trust signals")
	default:
		sc.cut(0.5, "no testimonials, certifications or guarantees")
	}

	phone := signals.HasPhone(in.BodyText)
	email := signals.HasEmail(in.BodyText)
	form := signals.FormPresent(r)
	channels := 0
	for _, ok := range []bool{phone, email, form} {
		if ok {
			channels++
		}
	}
	switch {
	case channels == 3:
		sc.add(1.5, "complete contact options: phone, email and form")
	case channels == 2:
		sc.add(0.75, "two contact channels")
	default:
		sc.weaknesses = append(sc.weaknesses, "hard to get in touch")
	}

	funnel := 0
	if signals.HasHero(r) {
		funnel++
	}
	if signals.HasValueLanguage(in.BodyText) {
		funnel++
	}
	if signals.HasProofLanguage(in.BodyText) {
		funnel++
	}
	if len(signals.CTATexts(r)) > 0 {
		funnel++
	}
	switch {
	case funnel == 4:
		sc.add(1.5, "complete persuasion funnel: promise, proof, action")
	case funnel == 3:
		sc.add(0.75, "mostly complete persuasion funnel")
	}

	popups := signals.PopupCount(r)
	if popups > 2 {
		sc.cut(1.0, fmt.Sprintf("%d popups add friction before value", popups))
	}

	if r.Err != nil {
		return Evaluation{}, fmt.Errorf("experts: %s: %w", ConversionStrategist, r.Err)
	}

	return sc.finish(ConversionStrategist, ConversionDetails{
		CTAMatches:   ctaMatches,
		AboveFoldCTA: aboveFold,
		TrustGroups:  trust,
		HasPhone:     phone,
		HasEmail:     email,
		HasForm:      form,
		FunnelSteps:  funnel,
		PopupCount:   popups,
	}), nil
}

func desktopViewportHeight(in Inputs) int {
	if in.Captures == nil || in.Captures.Desktop.Viewport.Height == 0 {
		return 900
	}
	return in.Captures.Desktop.Viewport.Height
}
