package capture

import (
	"strconv"
	"strings"

	"github.com/sitejury/sitejury/page"
)

// Component tags appended to a desktop render when detected.
const (
	ComponentHero   = "hero"
	ComponentCards  = "cards"
	ComponentCTA    = "cta"
	ComponentFooter = "footer"
	ComponentNav    = "nav"
)

// Mobile navigation patterns, best first.
const (
	NavHamburger = "hamburger"
	NavStacked   = "stacked"
	NavNone      = "none"
)

// DetectComponents runs presence tests for the canonical page building
// blocks and returns the tags of those found, in fixed order.
func DetectComponents(q page.Query) ([]string, error) {
	var comps []string

	probes := []struct {
		tag      string
		selector string
		min      int
	}{
		{ComponentHero, `[class*="hero"], header, main > section:first-of-type`, 1},
		{ComponentCards, `[class*="card"], article`, 3},
		{ComponentCTA, `button, input[type="submit"], a[class*="btn"], a[class*="cta"]`, 1},
		{ComponentFooter, `footer, [class*="footer"]`, 1},
		{ComponentNav, `nav, [role="navigation"]`, 1},
	}
	for _, pr := range probes {
		n, err := q.Count(pr.selector)
		if err != nil {
			return nil, err
		}
		if n >= pr.min {
			comps = append(comps, pr.tag)
		}
	}
	return comps, nil
}

// ClassifyNav labels the mobile navigation pattern: a toggle control wins
// over stacked links, which win over nothing.
func ClassifyNav(q page.Query) (string, error) {
	toggles, err := q.Count(`[class*="hamburger"], [class*="burger"], [class*="menu-toggle"], button[class*="menu"], button[aria-expanded]`)
	if err != nil {
		return NavNone, err
	}
	if toggles > 0 {
		return NavHamburger, nil
	}

	links, err := q.Count("nav a")
	if err != nil {
		return NavNone, err
	}
	if links >= 3 {
		return NavStacked, nil
	}
	return NavNone, nil
}

// Mobile readability scoring bounds.
const maxOverlapPairs = 5

// ScoreReadability scores mobile text legibility on a 0-5 scale: base
// font size (>=16px: 2, >=14px: 1), line-height ratio (1.5-1.8: 2,
// 1.3-2.0: 1), and one point when fewer than five element pairs overlap.
func ScoreReadability(q page.Query) (int, error) {
	score := 0

	fontSize, lineHeight, err := bodyTypography(q)
	if err != nil {
		return 0, err
	}

	switch {
	case fontSize >= 16:
		score += 2
	case fontSize >= 14:
		score++
	}

	if fontSize > 0 && lineHeight > 0 {
		ratio := lineHeight / fontSize
		switch {
		case ratio >= 1.5 && ratio <= 1.8:
			score += 2
		case ratio >= 1.3 && ratio <= 2.0:
			score++
		}
	}

	overlaps, err := overlapCount(q)
	if err != nil {
		return score, err
	}
	if overlaps < maxOverlapPairs {
		score++
	}
	return score, nil
}

func bodyTypography(q page.Query) (fontSize, lineHeight float64, err error) {
	fs, err := q.Styles("body", "font-size")
	if err != nil {
		return 0, 0, err
	}
	if len(fs) > 0 {
		fontSize = parsePxValue(fs[0])
	}
	lh, err := q.Styles("body", "line-height")
	if err != nil {
		return fontSize, 0, err
	}
	if len(lh) > 0 {
		lineHeight = parsePxValue(lh[0])
		// Unitless line-height is a multiplier of the font size.
		if lineHeight > 0 && lineHeight < 4 && fontSize > 0 && !strings.Contains(lh[0], "px") {
			lineHeight *= fontSize
		}
	}
	return fontSize, lineHeight, nil
}

// overlapCount counts pairwise bounding-box intersections among the first
// visible content elements. Bounded quadratic: the box list is capped.
func overlapCount(q page.Query) (int, error) {
	boxes, err := q.Boxes("a, button, img, h1, h2, h3, p")
	if err != nil {
		return 0, err
	}
	if len(boxes) > 60 {
		boxes = boxes[:60]
	}
	count := 0
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Intersects(boxes[j]) {
				count++
			}
		}
	}
	return count, nil
}

func parsePxValue(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
