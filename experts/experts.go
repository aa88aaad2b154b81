// Package experts implements the five-member heuristic evaluation panel.
// Each evaluator scores one axis of a rendered page on a 0-10 scale from
// structural, visual and textual signals, and returns its raw
// sub-measurements for audit. Evaluators share no mutable state; the
// panel runs them concurrently and isolates individual failures.
package experts

import (
	"encoding/json"

	"github.com/sitejury/sitejury/capture"
	"github.com/sitejury/sitejury/page"
)

// Tier is the ordered verdict scale used per evaluation and for the final
// consensus verdict.
type Tier int

const (
	TierPoor Tier = iota
	TierOK
	TierGood
	TierExcellent
	TierWorldClass
)

var tierNames = [...]string{"Poor", "OK", "Good", "Excellent", "World-Class"}

func (t Tier) String() string {
	if t < TierPoor || t > TierWorldClass {
		return "Poor"
	}
	return tierNames[t]
}

// MarshalJSON renders the tier as its display name.
func (t Tier) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// TierForScore maps a 0-10 evaluation score to its tier.
func TierForScore(score float64) Tier {
	switch {
	case score >= 9:
		return TierWorldClass
	case score >= 7.5:
		return TierExcellent
	case score >= 6:
		return TierGood
	case score >= 4:
		return TierOK
	default:
		return TierPoor
	}
}

// Agent identifies one panel member.
type Agent string

const (
	UXDesigner           Agent = "ux_designer"
	ProductDesigner      Agent = "product_designer"
	ConversionStrategist Agent = "conversion_strategist"
	SEOSpecialist        Agent = "seo_specialist"
	BrandAnalyst         Agent = "brand_analyst"
)

// Focus is the one-line description of what the agent looks at.
func (a Agent) Focus() string {
	switch a {
	case UXDesigner:
		return "usability, navigation and interaction quality"
	case ProductDesigner:
		return "visual design, typography and layout polish"
	case ConversionStrategist:
		return "calls to action, trust signals and funnel completeness"
	case SEOSpecialist:
		return "search findability and content structure"
	case BrandAnalyst:
		return "brand identity, originality and narrative"
	default:
		return "content"
	}
}

// Base is the agent's starting score before signal adjustments. It is
// also the neutral score substituted when the evaluator fails.
func (a Agent) Base() float64 {
	if a == ConversionStrategist {
		return 3.0
	}
	return 4.0
}

// Details is the closed set of per-agent measurement payloads. The
// payloads are audit data only; aggregation never reads them.
type Details interface{ agentDetails() }

// Evaluation is one panel member's verdict. Immutable once returned.
type Evaluation struct {
	Agent      Agent    `json:"agent"`
	Focus      string   `json:"focus"`
	Score      float64  `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Verdict    Tier     `json:"verdict"`
	Details    Details  `json:"details,omitempty"`
}

// Inputs is the read-only evidence shared by the whole panel.
type Inputs struct {
	URL      string
	HTML     string
	BodyText string
	Query    page.Query
	Captures *capture.Bundle
}

// Evaluator is one panel member.
type Evaluator interface {
	Agent() Agent
	Evaluate(in Inputs) (Evaluation, error)
}

// Neutral is the substitute evaluation for a failed panel member: base
// score, no findings.
func Neutral(a Agent) Evaluation {
	return Evaluation{
		Agent:      a,
		Focus:      a.Focus(),
		Score:      a.Base(),
		Strengths:  []string{},
		Weaknesses: []string{},
		Verdict:    TierForScore(a.Base()),
	}
}

// scorecard accumulates signal adjustments and their rationale.
type scorecard struct {
	score      float64
	strengths  []string
	weaknesses []string
}

func newScorecard(base float64) *scorecard {
	return &scorecard{score: base, strengths: []string{}, weaknesses: []string{}}
}

// add credits delta points with the given rationale.
func (s *scorecard) add(delta float64, note string) {
	s.score += delta
	s.strengths = append(s.strengths, note)
}

// cut deducts delta points (delta is positive) with the given rationale.
func (s *scorecard) cut(delta float64, note string) {
	s.score -= delta
	s.weaknesses = append(s.weaknesses, note)
}

// bump adjusts the score without recording a finding.
func (s *scorecard) bump(delta float64) { s.score += delta }

// finish clamps the score and assembles the evaluation.
func (s *scorecard) finish(a Agent, details Details) Evaluation {
	score := clamp(s.score, 0, 10)
	return Evaluation{
		Agent:      a,
		Focus:      a.Focus(),
		Score:      score,
		Strengths:  s.strengths,
		Weaknesses: s.weaknesses,
		Verdict:    TierForScore(score),
		Details:    details,
	}
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
