package experts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sitejury/sitejury/signals"
)

// UXDetails carries the UX designer's raw measurements.
type UXDetails struct {
	Usability      float64 `json:"usability"`
	NavLinks       int     `json:"nav_links"`
	H1Count        int     `json:"h1_count"`
	H2Count        int     `json:"h2_count"`
	TapTargetRatio float64 `json:"tap_target_ratio"`
	LayoutRhythm   float64 `json:"layout_rhythm"`
}

func (UXDetails) agentDetails() {}

var backAffordanceRe = regexp.MustCompile(`(?i)\b(back|cancel|undo)\b`)
var helpRe = regexp.MustCompile(`(?i)\b(faq|help|support)\b`)

type uxDesigner struct{}

// NewUXDesigner returns the usability panel member.
func NewUXDesigner() Evaluator { return uxDesigner{} }

func (uxDesigner) Agent() Agent { return UXDesigner }

func (uxDesigner) Evaluate(in Inputs) (Evaluation, error) {
	r := signals.NewReader(in.Query)
	sc := newScorecard(UXDesigner.Base())

	usability := usabilityChecklist(r, in)
	sc.bump(usability * 0.3)
	if usability >= 7 {
		sc.strengths = append(sc.strengths, fmt.Sprintf("passes %d of 10 usability heuristics", int(usability)))
	} else if usability <= 3 {
		sc.weaknesses = append(sc.weaknesses, fmt.Sprintf("passes only %d of 10 usability heuristics", int(usability)))
	}

	navLinks := signals.NavLinkCount(r)
	if navLinks >= 3 {
		sc.add(0.5, "clear navigation with multiple destinations")
	} else {
		sc.weaknesses = append(sc.weaknesses, "navigation is missing or too sparse")
	}

	h1 := r.Count("h1")
	h2 := r.Count("h2")
	if h1 == 1 && h2 >= 3 {
		sc.add(0.5, "clean heading hierarchy")
	}

	ctas := signals.CTATexts(r)
	if signals.HasHero(r) && len(ctas) >= 3 && signals.HasFooter(r) {
		sc.add(0.5, "complete page anatomy: hero, actions, footer")
	}

	tapRatio := signals.TapTargetAdequacy(r)
	if tapRatio >= 0.8 {
		sc.add(0.5, "tap targets are comfortably sized")
	} else if tapRatio < 0.5 {
		sc.weaknesses = append(sc.weaknesses, "many interactive elements are below 44x44px")
	}

	switch {
	case navLinks >= 3 && navLinks <= 7:
		sc.add(0.3, "navigation size in the usable sweet spot")
	case navLinks > 10:
		sc.cut(0.5, "navigation overloaded with links")
	}

	rhythm := desktopRhythm(in)
	sc.bump(rhythm / 10 * 0.5)

	if r.Err != nil {
		return Evaluation{}, fmt.Errorf("experts: %s: %w", UXDesigner, r.Err)
	}

	return sc.finish(UXDesigner, UXDetails{
		Usability:      usability,
		NavLinks:       navLinks,
		H1Count:        h1,
		H2Count:        h2,
		TapTargetRatio: tapRatio,
		LayoutRhythm:   rhythm,
	}), nil
}

// usabilityChecklist scores ten classic usability heuristics, one point
// each.
func usabilityChecklist(r *signals.Reader, in Inputs) float64 {
	points := 0.0

	// System status visibility: the page at least names itself, or shows
	// progress affordances.
	if signals.Title(r) != "" || r.Count(`[aria-live], [class*="loading"], [class*="spinner"]`) > 0 {
		points++
	}

	// Plain language: short average word length in the body.
	if avgWordLen(in.BodyText) > 0 && avgWordLen(in.BodyText) < 7 {
		points++
	}

	// Undo/back affordance: breadcrumbs or explicit back/cancel links.
	if r.Count(`[class*="breadcrumb"]`) > 0 || anyMatch(r.Texts("a, button"), backAffordanceRe) {
		points++
	}

	// Consistent control styling.
	if len(signals.CTATexts(r)) > 0 && signals.DistinctButtonColors(r) <= 3 {
		points++
	}

	// Input validation affordances.
	if r.Count(`input[required], input[pattern], [aria-invalid], [aria-required]`) > 0 {
		points++
	}

	// Labeled form fields.
	inputs := r.Count(`input:not([type="hidden"]), select, textarea`)
	if inputs > 0 && r.Count("label") >= inputs {
		points++
	}

	// Shortcuts and tooltips.
	if r.Count(`[accesskey], [title]`) > 0 {
		points++
	}

	// Minimalism: a digestible number of sections.
	if n := signals.SectionCount(r); n >= 3 && n <= 8 {
		points++
	}

	// Error messaging affordances.
	if r.Count(`[class*="error"], [role="alert"]`) > 0 {
		points++
	}

	// Help and documentation.
	if helpRe.MatchString(in.BodyText) {
		points++
	}

	return points
}

func avgWordLen(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}

func anyMatch(texts []string, re *regexp.Regexp) bool {
	for _, t := range texts {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// desktopRhythm reads the layout rhythm off the desktop capture, with the
// neutral default when captures are absent.
func desktopRhythm(in Inputs) float64 {
	if in.Captures == nil {
		return 5.0
	}
	return in.Captures.Desktop.LayoutRhythm
}
