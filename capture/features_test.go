package capture

import (
	"testing"

	"github.com/sitejury/sitejury/page"
)

func mustStatic(t *testing.T, html string) page.Query {
	t.Helper()
	q, err := page.NewStatic(html)
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestDetectComponents_RichPage(t *testing.T) {
	// WHAT: a page with hero, three cards, a CTA, footer and nav yields
	// all five component tags.
	q := mustStatic(t, `<html><body>
		<nav><a href="/">Home</a></nav>
		<section class="hero">Welcome</section>
		<div class="card">a</div><div class="card">b</div><div class="card">c</div>
		<a class="btn" href="/buy">Buy</a>
		<footer>fin</footer>
	</body></html>`)

	comps, err := DetectComponents(q)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{ComponentHero, ComponentCards, ComponentCTA, ComponentFooter, ComponentNav}
	if len(comps) != len(want) {
		t.Fatalf("components: got %v, want %v", comps, want)
	}
	for i := range want {
		if comps[i] != want[i] {
			t.Errorf("component %d: got %s, want %s", i, comps[i], want[i])
		}
	}
}

func TestDetectComponents_HollowPage(t *testing.T) {
	// WHAT: a bare paragraph detects nothing.
	q := mustStatic(t, `<html><body><p>hello</p></body></html>`)
	comps, err := DetectComponents(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(comps) != 0 {
		t.Errorf("hollow page: got %v", comps)
	}
}

func TestClassifyNav_Precedence(t *testing.T) {
	// WHAT: hamburger beats stacked beats none.
	// WHY: the classification order is part of the mobile contract.
	cases := []struct {
		name string
		html string
		want string
	}{
		{"hamburger", `<body><button class="menu-toggle">☰</button><nav><a>1</a><a>2</a><a>3</a></nav></body>`, NavHamburger},
		{"stacked", `<body><nav><a>1</a><a>2</a><a>3</a></nav></body>`, NavStacked},
		{"two links", `<body><nav><a>1</a><a>2</a></nav></body>`, NavNone},
		{"nothing", `<body><p>hi</p></body>`, NavNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ClassifyNav(mustStatic(t, c.html))
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

func TestScoreReadability_IdealTypography(t *testing.T) {
	// WHAT: 16px body text with 1.6 line-height and no overlaps scores 5.
	q := mustStatic(t, `<body style="font-size: 16px; line-height: 1.6"><p>text</p></body>`)
	got, err := ScoreReadability(q)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("readability: got %d, want 5", got)
	}
}

func TestScoreReadability_SmallCrampedText(t *testing.T) {
	// WHAT: 12px text with 1.1 line-height earns only the overlap point.
	q := mustStatic(t, `<body style="font-size: 12px; line-height: 1.1"><p>text</p></body>`)
	got, err := ScoreReadability(q)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("readability: got %d, want 1", got)
	}
}

func TestScoreReadability_OverlapPenalty(t *testing.T) {
	// WHAT: five or more overlapping element pairs forfeit the layout point.
	html := `<body style="font-size: 16px; line-height: 1.6">`
	// Six boxes stacked on the same spot: 15 overlapping pairs.
	for i := 0; i < 6; i++ {
		html += `<p style="top: 10px; left: 10px; width: 100px; height: 50px">x</p>`
	}
	html += `</body>`
	got, err := ScoreReadability(mustStatic(t, html))
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("readability: got %d, want 4", got)
	}
}
