// Package consensus aggregates the five expert evaluations into one
// explainable verdict. It is a pure function of the evaluations, the page
// URL and the body text: industry detection picks a weight profile, the
// category scores are blended into a 0-100 composite, outliers are
// flagged, and a threshold table with a cross-category gate yields the
// final tier.
package consensus

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/sitejury/sitejury/experts"
)

// Result is the terminal output of the pipeline. Never mutated after
// construction.
type Result struct {
	Industry         string             `json:"industry"`
	Weights          map[string]float64 `json:"weights"`
	NormalizedScores map[string]float64 `json:"normalized_scores"`
	WeightedScore    float64            `json:"weighted_score"`
	Anomalies        []string           `json:"anomalies"`
	FinalVerdict     experts.Tier       `json:"final_verdict"`
	ExpertAgreement  float64            `json:"expert_agreement"`
}

// The six canonical scoring categories.
const (
	CategoryUX         = "ux"
	CategoryVisual     = "visual"
	CategoryContent    = "content"
	CategoryConversion = "conversion"
	CategorySEO        = "seo"
	CategoryBrand      = "brand"
)

// categories fixes the iteration order for every accumulation over
// category maps. Float addition is not associative, so summing in map
// order would make identical inputs disagree in the last ULP.
var categories = [...]string{
	CategoryUX, CategoryVisual, CategoryContent,
	CategoryConversion, CategorySEO, CategoryBrand,
}

// A category score deviating from the panel mean by more than this is an
// anomaly.
const anomalyThreshold = 2.5

// CategoryFor maps an agent to its scoring category. Total: unknown
// agents land in the residual content category.
func CategoryFor(a experts.Agent) string {
	switch a {
	case experts.UXDesigner:
		return CategoryUX
	case experts.ProductDesigner:
		return CategoryVisual
	case experts.ConversionStrategist:
		return CategoryConversion
	case experts.SEOSpecialist:
		return CategorySEO
	case experts.BrandAnalyst:
		return CategoryBrand
	default:
		return CategoryContent
	}
}

// Evaluate aggregates exactly five expert evaluations. Fewer or more
// evaluations, a duplicated agent, or a score outside [0,10] is an
// input-contract violation and fails the whole call.
func Evaluate(evals []experts.Evaluation, pageURL, bodyText string) (*Result, error) {
	if len(evals) != 5 {
		return nil, fmt.Errorf("consensus: need exactly 5 evaluations, got %d", len(evals))
	}

	scores := make(map[string]float64, len(evals))
	seen := make(map[experts.Agent]bool, len(evals))
	for _, ev := range evals {
		if seen[ev.Agent] {
			return nil, fmt.Errorf("consensus: duplicate agent %s", ev.Agent)
		}
		seen[ev.Agent] = true
		if ev.Score < 0 || ev.Score > 10 {
			return nil, fmt.Errorf("consensus: agent %s score %.2f outside [0,10]", ev.Agent, ev.Score)
		}
		scores[CategoryFor(ev.Agent)] = normalize(ev.Score)
	}

	industry := DetectIndustry(pageURL, bodyText)
	weights := WeightsFor(industry)

	weighted := weightedScore(scores, weights)
	anomalies := detectAnomalies(scores)
	agreement := expertAgreement(scores)

	return &Result{
		Industry:         industry,
		Weights:          weights,
		NormalizedScores: scores,
		WeightedScore:    weighted,
		Anomalies:        anomalies,
		FinalVerdict:     verdict(weighted, scores),
		ExpertAgreement:  agreement,
	}, nil
}

// normalize re-asserts the [0,10] clamp at the aggregation boundary.
func normalize(score float64) float64 {
	return math.Min(10, math.Max(0, score))
}

// weightedScore blends the category scores onto a 0-100 scale. Categories
// in the profile without a score contribute 0.
func weightedScore(scores, weights map[string]float64) float64 {
	total := 0.0
	for _, cat := range categories {
		total += scores[cat] * weights[cat] * 10
	}
	return total
}

// presentMean averages the scores of the categories that are present,
// in canonical order.
func presentMean(scores map[string]float64) float64 {
	sum := 0.0
	for _, cat := range categories {
		if s, ok := scores[cat]; ok {
			sum += s
		}
	}
	return sum / float64(len(scores))
}

// detectAnomalies flags categories deviating from the mean of the present
// scores by more than the threshold. Output follows the canonical
// category order so identical inputs yield identical results.
func detectAnomalies(scores map[string]float64) []string {
	if len(scores) == 0 {
		return []string{}
	}
	mean := presentMean(scores)

	anomalies := []string{}
	for _, cat := range categories {
		s, ok := scores[cat]
		if !ok {
			continue
		}
		if math.Abs(s-mean) > anomalyThreshold {
			anomalies = append(anomalies,
				fmt.Sprintf("%s score %.1f deviates sharply from the panel mean %.1f", cat, s, mean))
		}
	}
	return anomalies
}

// expertAgreement maps the population variance of the present scores to a
// 0-100 scale: identical scores agree at 100, a 25-point variance or more
// drives agreement to 0.
func expertAgreement(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	mean := presentMean(scores)

	variance := 0.0
	for _, cat := range categories {
		s, ok := scores[cat]
		if !ok {
			continue
		}
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(scores))

	return math.Min(100, math.Max(0, 100-10*variance))
}

// Per-category minimums a page must clear, in addition to the composite
// cutoffs, before Excellent or World-Class is awarded. The gate covers
// all six canonical categories whether or not the active profile weights
// them; a missing category counts as 0 and always fails.
var verdictGates = map[string]float64{
	CategoryUX:         8.0,
	CategoryVisual:     8.0,
	CategoryContent:    8.0,
	CategoryConversion: 7.5,
	CategorySEO:        7.5,
	CategoryBrand:      7.0,
}

func gatesMet(scores map[string]float64) bool {
	for cat, min := range verdictGates {
		if scores[cat] < min {
			return false
		}
	}
	return true
}

// verdict applies the composite threshold table plus the category gate.
func verdict(weighted float64, scores map[string]float64) experts.Tier {
	switch {
	case weighted < 40:
		return experts.TierPoor
	case weighted < 60:
		return experts.TierOK
	case weighted < 75 || !gatesMet(scores):
		return experts.TierGood
	case weighted < 90:
		return experts.TierExcellent
	default:
		return experts.TierWorldClass
	}
}

// industryRule pairs an industry with its keyword evidence. Rules are
// evaluated in order; the first match wins.
type industryRule struct {
	name string
	re   *regexp.Regexp
}

var industryRules = []industryRule{
	{"law", regexp.MustCompile(`\b(attorney|lawyer|law firm|legal services|law office|litigation)\b`)},
	{"saas", regexp.MustCompile(`\b(saas|free trial|api|dashboard|platform|integrations|sign up free)\b`)},
	{"creative-agency", regexp.MustCompile(`\b(agency|portfolio|creative studio|design studio|branding)\b`)},
	{"ecommerce", regexp.MustCompile(`\b(add to cart|checkout|shop now|free shipping|our products|store)\b`)},
	{"medical", regexp.MustCompile(`\b(doctors?|clinic|dental|medical|patients?|book an appointment)\b`)},
	{"real-estate", regexp.MustCompile(`\b(real estate|realtor|property|listings|homes for sale)\b`)},
	{"automotive", regexp.MustCompile(`\b(dealership|vehicles?|auto repair|test drive|cars?)\b`)},
}

// DefaultIndustry is returned when no rule matches.
const DefaultIndustry = "default"

// DetectIndustry classifies the business vertical from the URL and body
// text. Priority is fixed: law > saas > creative-agency > ecommerce >
// medical > real-estate > automotive > default.
func DetectIndustry(pageURL, bodyText string) string {
	haystack := strings.ToLower(pageURL + " " + bodyText)
	for _, rule := range industryRules {
		if rule.re.MatchString(haystack) {
			return rule.name
		}
	}
	return DefaultIndustry
}

// Industry weight profiles. Each profile's weights sum to 1.0.
var weightProfiles = map[string]map[string]float64{
	DefaultIndustry: {
		CategoryUX: 0.20, CategoryVisual: 0.20, CategoryContent: 0.15,
		CategoryConversion: 0.15, CategorySEO: 0.15, CategoryBrand: 0.15,
	},
	"law": {
		CategoryUX: 0.20, CategoryVisual: 0.15, CategoryContent: 0.25,
		CategoryConversion: 0.15, CategorySEO: 0.15, CategoryBrand: 0.10,
	},
	"saas": {
		CategoryUX: 0.25, CategoryVisual: 0.20, CategoryContent: 0.15,
		CategoryConversion: 0.20, CategorySEO: 0.10, CategoryBrand: 0.10,
	},
	"creative-agency": {
		CategoryUX: 0.15, CategoryVisual: 0.35, CategoryContent: 0.10,
		CategoryConversion: 0.10, CategorySEO: 0.10, CategoryBrand: 0.20,
	},
	"ecommerce": {
		CategoryUX: 0.25, CategoryVisual: 0.15, CategoryContent: 0.10,
		CategoryConversion: 0.30, CategorySEO: 0.10, CategoryBrand: 0.10,
	},
	"medical": {
		CategoryUX: 0.25, CategoryVisual: 0.15, CategoryContent: 0.20,
		CategoryConversion: 0.10, CategorySEO: 0.20, CategoryBrand: 0.10,
	},
	"real-estate": {
		CategoryUX: 0.20, CategoryVisual: 0.25, CategoryContent: 0.15,
		CategoryConversion: 0.20, CategorySEO: 0.15, CategoryBrand: 0.05,
	},
	"automotive": {
		CategoryUX: 0.20, CategoryVisual: 0.15, CategoryContent: 0.15,
		CategoryConversion: 0.25, CategorySEO: 0.15, CategoryBrand: 0.10,
	},
}

// WeightsFor returns a copy of the named industry's weight profile, or
// the default profile for unknown industries.
func WeightsFor(industry string) map[string]float64 {
	profile, ok := weightProfiles[industry]
	if !ok {
		profile = weightProfiles[DefaultIndustry]
	}
	out := make(map[string]float64, len(profile))
	for k, v := range profile {
		out[k] = v
	}
	return out
}

// Industries lists the known profile names, default included.
func Industries() []string {
	out := make([]string, 0, len(weightProfiles))
	for name := range weightProfiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
