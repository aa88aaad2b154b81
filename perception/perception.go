// Package perception models a first human impression of a rendered page
// as four 0-25 sub-scores summing to a 0-100 total. It runs beside the
// expert panel and is reported with, never blended into, the consensus.
package perception

import (
	"fmt"

	"github.com/sitejury/sitejury/capture"
	"github.com/sitejury/sitejury/page"
	"github.com/sitejury/sitejury/signals"
)

// Band is a coarse label over a numeric score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Breakdown labels three qualities of the overall impression.
type Breakdown struct {
	Trust     Band `json:"trust"`
	Premium   Band `json:"premium"`
	Memorable Band `json:"memorable"`
}

// Score is the perception result. Each dimension is clamped to [0,25];
// Total is their sum.
type Score struct {
	FirstImpression     float64   `json:"first_impression"`
	EmotionalResonance  float64   `json:"emotional_resonance"`
	Cohesion            float64   `json:"cohesion"`
	IdentityRecognition float64   `json:"identity_recognition"`
	Total               float64   `json:"total_score"`
	Breakdown           Breakdown `json:"breakdown"`
}

const (
	dimensionBase = 12.5
	dimensionMax  = 25.0

	// Template-marker gate threshold on body length.
	genericGateMinBody = 500
)

// Assess scores the page across the four perception dimensions.
func Assess(q page.Query, rawHTML, bodyText string, caps *capture.Bundle) (*Score, error) {
	r := signals.NewReader(q)

	s := &Score{
		FirstImpression:     firstImpression(r, rawHTML, bodyText),
		EmotionalResonance:  emotionalResonance(r, rawHTML, bodyText, caps),
		Cohesion:            cohesion(r, caps),
		IdentityRecognition: identityRecognition(r, rawHTML, bodyText, caps),
	}
	if r.Err != nil {
		return nil, fmt.Errorf("perception: %w", r.Err)
	}

	s.Total = s.FirstImpression + s.EmotionalResonance + s.Cohesion + s.IdentityRecognition
	s.Breakdown = Breakdown{
		Trust:     bandFor(s.Total, 80, 60),
		Premium:   bandFor(s.EmotionalResonance, 20, 15),
		Memorable: bandFor(s.IdentityRecognition, 20, 15),
	}
	return s, nil
}

// firstImpression: visual polish, professional appearance, credibility.
func firstImpression(r *signals.Reader, rawHTML, body string) float64 {
	score := dimensionBase

	polish := countTrue(
		signals.HasGradients(rawHTML),
		signals.HasShadows(rawHTML),
		signals.HasRoundedCorners(rawHTML),
		signals.HighResImageCount(r) >= 3,
	)
	score += threeBand(polish, 3, 2, 5.0)

	professional := countTrue(
		signals.HasLogo(r),
		signals.HasNav(r),
		signals.HasFooter(r),
		signals.HasPhone(body) || signals.HasEmail(body) || signals.FormPresent(r),
	)
	score += threeBand(professional, 3, 2, 5.0)

	credibility := countTrue(
		signals.HasTestimonials(body),
		signals.HasCertifications(body),
		signals.HasSchema(r, rawHTML),
	)
	if credibility >= 2 {
		score += 2.5
	}

	return clamp(score, 0, dimensionMax)
}

// emotionalResonance: premium feel, trust density, engagement hooks.
func emotionalResonance(r *signals.Reader, rawHTML, body string, caps *capture.Bundle) float64 {
	score := dimensionBase

	premium := countTrue(
		signals.HasAnimation(rawHTML),
		signals.HasTransitions(rawHTML),
		signals.IconCount(r) >= 5,
		paletteSize(caps) >= 3,
	)
	score += threeBand(premium, 3, 2, 5.0)

	trust := signals.TrustGroupCount(body)
	score += threeBand(trust, 3, 2, 5.0)

	engagement := countTrue(
		signals.HasVideo(r),
		signals.HasInteractivity(r),
		signals.CTAMatchCount(signals.CTATexts(r)) > 0,
	)
	switch {
	case engagement >= 2:
		score += 2.5
	case engagement == 1:
		score += 1.25
	}

	return clamp(score, 0, dimensionMax)
}

// cohesion: style consistency, brand consistency, layout rhythm.
func cohesion(r *signals.Reader, caps *capture.Bundle) float64 {
	score := dimensionBase

	buttons := signals.DistinctButtonColors(r)
	fonts := signals.DistinctFonts(r)
	paddings := signals.DistinctSectionPaddings(r)
	consistency := countTrue(
		buttons > 0 && buttons <= 3,
		fonts > 0 && fonts <= 3,
		paddings > 0 && paddings <= 3,
	)
	score += threeBand(consistency, 3, 2, 5.0)

	pal := paletteSize(caps)
	brand := countTrue(
		signals.HasLogo(r),
		signals.IconCount(r) >= 5,
		pal >= 2 && pal <= 6,
	)
	score += threeBand(brand, 3, 2, 5.0)

	score += rhythm(caps) / 10 * 2.5

	return clamp(score, 0, dimensionMax)
}

// identityRecognition: distinctiveness, memorability, generic-template gate.
func identityRecognition(r *signals.Reader, rawHTML, body string, caps *capture.Bundle) float64 {
	score := dimensionBase

	distinct := countTrue(
		signals.HasHero(r) && signals.CustomPhotoRatio(r) >= 0.5,
		rhythm(caps) >= 7,
		paletteSize(caps) >= 4,
	)
	switch {
	case distinct >= 2:
		score += 5.0
	case distinct == 1:
		score += 2.5
	}

	memorability := countTrue(
		signals.HasStoryLanguage(body),
		signals.HasTagline(r),
		signals.IconCount(r) >= 5,
		signals.HasAnimation(rawHTML),
	)
	score += threeBand(memorability, 3, 2, 5.0)

	if len(body) >= genericGateMinBody {
		if signals.HasTemplateMarkers(body, rawHTML) {
			score -= 2.5
		} else {
			score += 2.5
		}
	}

	return clamp(score, 0, dimensionMax)
}

// threeBand maps a signal count to 0, half, or full credit.
func threeBand(count, full, half int, max float64) float64 {
	switch {
	case count >= full:
		return max
	case count >= half:
		return max / 2
	default:
		return 0
	}
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func bandFor(score, high, medium float64) Band {
	switch {
	case score >= high:
		return BandHigh
	case score >= medium:
		return BandMedium
	default:
		return BandLow
	}
}

func paletteSize(caps *capture.Bundle) int {
	if caps == nil {
		return 0
	}
	return len(caps.Desktop.DominantColors)
}

func rhythm(caps *capture.Bundle) float64 {
	if caps == nil {
		return 5.0
	}
	return caps.Desktop.LayoutRhythm
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
