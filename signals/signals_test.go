package signals

import (
	"testing"

	"github.com/sitejury/sitejury/page"
)

func reader(t *testing.T, html string) *Reader {
	t.Helper()
	q, err := page.NewStatic(html)
	if err != nil {
		t.Fatal(err)
	}
	return NewReader(q)
}

func TestCTAMatchCount(t *testing.T) {
	// WHAT: strong action phrases are counted, weak labels are not.
	texts := []string{"Get Started", "Read our blog", "Buy now", "Privacy policy"}
	if got := CTAMatchCount(texts); got != 2 {
		t.Errorf("cta matches: got %d, want 2", got)
	}
}

func TestTrustGroupCount(t *testing.T) {
	// WHAT: each trust family counts once regardless of repetitions.
	body := "Read our testimonials. Certified and licensed. Trusted by 500 clients. " +
		"More testimonials here."
	if got := TrustGroupCount(body); got != 3 {
		t.Errorf("trust groups: got %d, want 3", got)
	}
	if got := TrustGroupCount("nothing to see"); got != 0 {
		t.Errorf("empty trust: got %d", got)
	}
}

func TestContactDetection(t *testing.T) {
	if !HasPhone("Call us at +1 (555) 123-4567 today") {
		t.Error("phone not detected")
	}
	if HasPhone("established 2001") {
		t.Error("year misread as phone")
	}
	if !HasEmail("write to help@acme.example for support") {
		t.Error("email not detected")
	}
}

func TestBoilerplateAndTemplateMarkers(t *testing.T) {
	if !HasBoilerplate("Welcome to our website, your trusted partner in business.") {
		t.Error("boilerplate not detected")
	}
	if HasBoilerplate("We replace burst pipes within two hours, city-wide.") {
		t.Error("specific copy misread as boilerplate")
	}
	if !HasTemplateMarkers("some text", `<div class="confetti-demo">Lorem ipsum</div>`) {
		t.Error("template markers not detected")
	}
}

func TestIsGenericTitle(t *testing.T) {
	cases := map[string]bool{
		"Home - My Site":              true,
		"About":                       true,
		"Contact Us":                  true,
		"Acme Plumbing | 24h Repairs": false,
	}
	for title, want := range cases {
		if got := IsGenericTitle(title); got != want {
			t.Errorf("IsGenericTitle(%q) = %v, want %v", title, got, want)
		}
	}
}

func TestStructuralProbes(t *testing.T) {
	// WHAT: logo, icons, schema, meta and link probes over one document.
	r := reader(t, `<html><head>
		<title>Acme</title>
		<meta name="description" content="Fast plumbing repairs in Springfield.">
		<meta property="og:description" content="Acme fixes leaks.">
		<script type="application/ld+json">{"@type":"LocalBusiness"}</script>
	</head><body>
		<nav><a href="/">Home</a><a href="/services">Services</a><a href="https://acme.example/pricing">Pricing</a><a href="https://other.example">Partner</a></nav>
		<img class="logo" src="/logo.svg" alt="Acme logo">
		<span class="icon">1</span><span class="icon">2</span>
		<img src="/work.jpg" width="1200" alt="a repaired sink">
		<img src="https://images.unsplash.com/stock.jpg" width="900">
		<form><input type="text"></form>
	</body></html>`)

	if !HasLogo(r) {
		t.Error("logo not detected")
	}
	if got := IconCount(r); got < 2 {
		t.Errorf("icons: got %d", got)
	}
	if !HasSchema(r, "") {
		t.Error("json-ld schema not detected")
	}
	if Title(r) != "Acme" {
		t.Errorf("title: got %q", Title(r))
	}
	if MetaDescription(r) == "" || OgDescription(r) == "" {
		t.Error("meta descriptions missing")
	}
	if got := HighResImageCount(r); got != 2 {
		t.Errorf("high-res images: got %d, want 2", got)
	}
	if got := CustomPhotoRatio(r); got <= 0.3 || got >= 0.8 {
		t.Errorf("custom ratio: got %.2f, want ~0.66", got)
	}
	// Two of three imgs carry alt text (logo counts too): 2/3.
	if got := AltCoverage(r); got < 0.6 || got > 0.7 {
		t.Errorf("alt coverage: got %.2f", got)
	}
	// Three internal links: two relative, one same-host absolute.
	if got := InternalLinkCount(r, "https://acme.example/"); got != 3 {
		t.Errorf("internal links: got %d, want 3", got)
	}
	if !FormPresent(r) {
		t.Error("form not detected")
	}
	if r.Err != nil {
		t.Fatalf("reader error: %v", r.Err)
	}
}

func TestAboveFoldCTA(t *testing.T) {
	// WHAT: a CTA whose box top sits under 80% of the viewport height
	// counts as above the fold.
	r := reader(t, `<body><a class="btn" style="top: 400px; width: 120px; height: 48px">Book now</a></body>`)
	if !AboveFoldCTA(r, 900) {
		t.Error("CTA at 400px should be above a 900px fold")
	}
	deep := reader(t, `<body><a class="btn" style="top: 2000px; width: 120px; height: 48px">Book now</a></body>`)
	if AboveFoldCTA(deep, 900) {
		t.Error("CTA at 2000px is below the fold")
	}
}

func TestTapTargetAdequacy(t *testing.T) {
	// WHAT: ratio of measurable interactive elements at least 44x44.
	r := reader(t, `<body>
		<a style="width: 120px; height: 48px">big</a>
		<a style="width: 20px; height: 20px">small</a>
		<a>unknown geometry</a>
	</body>`)
	if got := TapTargetAdequacy(r); got != 0.5 {
		t.Errorf("tap adequacy: got %.2f, want 0.5", got)
	}
}

func TestHeadingSizes(t *testing.T) {
	r := reader(t, `<body>
		<h1 style="font-size: 40px">a</h1>
		<h2 style="font-size: 28px">b</h2>
		<h2 style="font-size: 28px">c</h2>
		<h3 style="font-size: 20px">d</h3>
	</body>`)
	sizes := HeadingSizes(r)
	if len(sizes) != 3 {
		t.Errorf("distinct sizes: got %v", sizes)
	}
}

func TestMarkupMarkers(t *testing.T) {
	css := `<style>.hero{background: linear-gradient(#fff,#eee); box-shadow: 0 1px; border-radius: 8px; transition: all .2s} @keyframes spin{}</style>`
	if !HasGradients(css) || !HasShadows(css) || !HasRoundedCorners(css) || !HasAnimation(css) || !HasTransitions(css) {
		t.Error("style markers not detected")
	}
	plain := `<p>bare</p>`
	if HasGradients(plain) || HasShadows(plain) {
		t.Error("markers misdetected on bare markup")
	}
}

func TestReaderStickyError(t *testing.T) {
	// WHAT: the first selector error sticks and later calls are inert.
	// WHY: evaluators check Err once and fall back to neutral defaults.
	r := reader(t, `<body></body>`)
	r.Count("p[")
	if r.Err == nil {
		t.Fatal("expected sticky error")
	}
	if n := r.Count("p"); n != 0 {
		t.Errorf("post-error count: got %d", n)
	}
}
