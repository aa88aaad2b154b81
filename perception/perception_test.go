package perception

import (
	"strings"
	"testing"

	"github.com/sitejury/sitejury/capture"
	"github.com/sitejury/sitejury/page"
)

const polishedHTML = `<!DOCTYPE html><html><head>
<title>Studio Nord</title>
<script type="application/ld+json">{"@type":"Organization"}</script>
<style>
.hero{background:linear-gradient(#111,#333)} .card{box-shadow:0 2px 6px;border-radius:10px;transition:all .2s}
@keyframes float{from{top:0}to{top:4px}}
</style>
</head><body style="font-family:Inter">
<nav><a href="/">Work</a><a href="/studio">Studio</a><a href="/contact">Contact</a></nav>
<img class="logo" src="/logo.svg" alt="Studio Nord logo">
<section class="hero"><p class="tagline">Brands people remember</p>
  <a class="btn" style="background-color:#111">Get started</a></section>
<section style="padding:40px">
  <span class="icon"></span><span class="icon"></span><span class="icon"></span>
  <span class="icon"></span><span class="icon"></span>
  <img src="/case1.jpg" width="1400" alt="case"><img src="/case2.jpg" width="1200" alt="case">
  <img src="/case3.jpg" width="1100" alt="case">
  <video src="/reel.mp4"></video>
</section>
<section style="padding:40px"><form><input required></form></section>
<footer>hello@nord.example · +1 555 777 2121</footer>
</body></html>`

var polishedBody = "Our story started in 2012. Certified partners, trusted by 300 clients, " +
	"money-back guarantee on every engagement, and testimonials from teams we made famous. " +
	"Call +1 555 777 2121 or write hello@nord.example. " +
	strings.Repeat("We design identities, products and campaigns that people remember. ", 12)

const bareHTML = `<html><body><p>Coming soon. Lorem ipsum dolor sit amet placeholder.</p></body></html>`

var bareBody = strings.Repeat("Lorem ipsum dolor sit amet, sample text placeholder copy. ", 12)

func assess(t *testing.T, html, body string, caps *capture.Bundle) *Score {
	t.Helper()
	q, err := page.NewStatic(html)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Assess(q, html, body, caps)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func richCaps() *capture.Bundle {
	return &capture.Bundle{Desktop: capture.Render{
		Viewport: capture.DesktopViewport,
		DominantColors: []capture.Color{
			{R: 0, G: 0, B: 0}, {R: 224, G: 224, B: 224},
			{R: 96, G: 0, B: 160}, {R: 160, G: 160, B: 160},
		},
		LayoutRhythm: 8.5,
	}}
}

func flatCaps() *capture.Bundle {
	return &capture.Bundle{Desktop: capture.Render{
		Viewport:       capture.DesktopViewport,
		DominantColors: []capture.Color{{R: 255, G: 255, B: 255}},
		LayoutRhythm:   5.0,
	}}
}

func TestAssess_BoundsAndOrdering(t *testing.T) {
	// WHAT: all four dimensions stay in [0,25], total in [0,100], and a
	// polished page outranks a bare template dump.
	rich := assess(t, polishedHTML, polishedBody, richCaps())
	bare := assess(t, bareHTML, bareBody, flatCaps())

	for _, s := range []*Score{rich, bare} {
		for _, d := range []float64{s.FirstImpression, s.EmotionalResonance, s.Cohesion, s.IdentityRecognition} {
			if d < 0 || d > 25 {
				t.Errorf("dimension out of range: %.2f", d)
			}
		}
		if s.Total < 0 || s.Total > 100 {
			t.Errorf("total out of range: %.2f", s.Total)
		}
		sum := s.FirstImpression + s.EmotionalResonance + s.Cohesion + s.IdentityRecognition
		if s.Total != sum {
			t.Errorf("total %.2f != sum %.2f", s.Total, sum)
		}
	}

	if rich.Total <= bare.Total {
		t.Errorf("polished %.1f should beat bare %.1f", rich.Total, bare.Total)
	}
}

func TestAssess_GenericTemplateGate(t *testing.T) {
	// WHAT: template markers cost identity points once the body is long
	// enough to not be an honest placeholder.
	bare := assess(t, bareHTML, bareBody, flatCaps())
	short := assess(t, bareHTML, "Lorem ipsum.", flatCaps())

	if bare.IdentityRecognition >= short.IdentityRecognition {
		t.Errorf("gated page %.2f should score below ungated %.2f",
			bare.IdentityRecognition, short.IdentityRecognition)
	}
}

func TestAssess_BreakdownBands(t *testing.T) {
	// WHAT: breakdown labels follow the documented thresholds.
	rich := assess(t, polishedHTML, polishedBody, richCaps())
	if rich.Total >= 80 && rich.Breakdown.Trust != BandHigh {
		t.Errorf("trust band: got %s at total %.1f", rich.Breakdown.Trust, rich.Total)
	}
	if rich.EmotionalResonance >= 20 && rich.Breakdown.Premium != BandHigh {
		t.Errorf("premium band: got %s at %.1f", rich.Breakdown.Premium, rich.EmotionalResonance)
	}

	bare := assess(t, bareHTML, bareBody, flatCaps())
	if bare.Breakdown.Trust == BandHigh {
		t.Errorf("bare page trust band: got %s at total %.1f", bare.Breakdown.Trust, bare.Total)
	}
}

func TestBandFor(t *testing.T) {
	if bandFor(82, 80, 60) != BandHigh || bandFor(65, 80, 60) != BandMedium || bandFor(10, 80, 60) != BandLow {
		t.Error("band thresholds broken")
	}
}
