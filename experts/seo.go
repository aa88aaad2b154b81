package experts

import (
	"fmt"

	"github.com/sitejury/sitejury/signals"
)

// SEODetails carries the SEO specialist's raw measurements.
type SEODetails struct {
	TitleLength   int     `json:"title_length"`
	GenericTitle  bool    `json:"generic_title"`
	MetaLength    int     `json:"meta_length"`
	H1Count       int     `json:"h1_count"`
	H2Count       int     `json:"h2_count"`
	HasSchema     bool    `json:"has_schema"`
	AltCoverage   float64 `json:"alt_coverage"`
	WordCount     int     `json:"word_count"`
	InternalLinks int     `json:"internal_links"`
}

func (SEODetails) agentDetails() {}

type seoSpecialist struct{}

// NewSEOSpecialist returns the findability panel member.
func NewSEOSpecialist() Evaluator { return seoSpecialist{} }

func (seoSpecialist) Agent() Agent { return SEOSpecialist }

func (seoSpecialist) Evaluate(in Inputs) (Evaluation, error) {
	r := signals.NewReader(in.Query)
	sc := newScorecard(SEOSpecialist.Base())

	title := signals.Title(r)
	titleLen := len(title)
	if titleLen >= 30 && titleLen <= 60 {
		sc.add(0.8, "title length in the display sweet spot")
	}
	generic := signals.IsGenericTitle(title)
	if title != "" && !generic {
		sc.add(0.4, "distinctive page title")
	} else {
		sc.cut(0.4, "title is missing or reads like a template default")
	}

	meta := signals.MetaDescription(r)
	if l := len(meta); l >= 120 && l <= 165 {
		sc.add(0.8, "meta description fills the snippet")
	}

	h1 := r.Count("h1")
	switch {
	case h1 == 1:
		sc.add(0.6, "exactly one H1")
	case h1 == 0:
		sc.cut(0.6, "no H1 on the page")
	default:
		excess := float64(h1 - 1)
		sc.cut(clamp(0.3*excess, 0.3, 1.2), fmt.Sprintf("%d competing H1 headings", h1))
	}

	h2 := r.Count("h2")
	if h2 >= 3 {
		sc.add(0.4, "sectioned content under H2 headings")
	}

	schema := signals.HasSchema(r, in.HTML)
	if schema {
		sc.add(0.6, "structured-data markup present")
	}

	altCov := signals.AltCoverage(r)
	switch {
	case altCov >= 0.9:
		sc.add(0.8, "nearly all images describe themselves")
	case altCov >= 0.7:
		sc.add(0.4, "most images carry alt text")
	}

	words := signals.WordCount(in.BodyText)
	switch {
	case words >= 2000:
		sc.add(0.8, "deep long-form content")
	case words >= 1000:
		sc.add(0.4, "substantial content volume")
	case words < 300:
		sc.cut(0.8, "thin content, under 300 words")
	}

	internal := signals.InternalLinkCount(r, in.URL)
	if internal >= 10 {
		sc.add(0.4, "rich internal linking")
	}

	// Coarse keyword-optimization signal: the title and meta together
	// leave room for query terms.
	if titleLen+len(meta) >= 150 {
		sc.add(0.4, "title and meta leave room for query terms")
	}

	if r.Err != nil {
		return Evaluation{}, fmt.Errorf("experts: %s: %w", SEOSpecialist, r.Err)
	}

	return sc.finish(SEOSpecialist, SEODetails{
		TitleLength:   titleLen,
		GenericTitle:  generic,
		MetaLength:    len(meta),
		H1Count:       h1,
		H2Count:       h2,
		HasSchema:     schema,
		AltCoverage:   altCov,
		WordCount:     words,
		InternalLinks: internal,
	}), nil
}
