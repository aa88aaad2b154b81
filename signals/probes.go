package signals

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sitejury/sitejury/page"
)

// Selector vocabulary shared by the probes.
const (
	ctaSelector    = `button, input[type="submit"], a[class*="btn"], a[class*="cta"], [class*="button"]`
	logoSelector   = `img[src*="logo"], img[alt*="logo"], [class*="logo"]`
	iconSelector   = `svg, [class*="icon"], i[class*="fa-"], img[src*="icon"]`
	popupSelector  = `[class*="popup"], [class*="modal"], [id*="popup"], [id*="modal"]`
	heroSelector   = `[class*="hero"], header`
	taglineSel     = `[class*="tagline"], [class*="hero"] p, header p`
	videoSelector  = `video, iframe[src*="youtube"], iframe[src*="vimeo"]`
	interactiveSel = `[onclick], [data-toggle], [data-action], details, [aria-expanded]`
)

// A rendered image at least this wide counts as high resolution.
const highResWidth = 800.0

// CTATexts returns the visible text of every call-to-action control.
func CTATexts(r *Reader) []string { return r.Texts(ctaSelector) }

// CTABoxes returns the geometry of every call-to-action control.
func CTABoxes(r *Reader) []page.Box { return r.Boxes(ctaSelector) }

// AboveFoldCTA reports whether any CTA sits inside the top 80% of the
// viewport height.
func AboveFoldCTA(r *Reader, viewportHeight int) bool {
	fold := 0.8 * float64(viewportHeight)
	for _, b := range CTABoxes(r) {
		if b.Height > 0 && b.Y < fold {
			return true
		}
	}
	return false
}

// HasLogo reports a recognizable logo element.
func HasLogo(r *Reader) bool { return r.Count(logoSelector) > 0 }

// IconCount counts icon-like elements.
func IconCount(r *Reader) int { return r.Count(iconSelector) }

// PopupCount counts popup and modal containers.
func PopupCount(r *Reader) int { return r.Count(popupSelector) }

// HasHero reports a hero or header block.
func HasHero(r *Reader) bool { return r.Count(heroSelector) > 0 }

// HasFooter reports a footer.
func HasFooter(r *Reader) bool { return r.Count(`footer, [class*="footer"]`) > 0 }

// HasNav reports a navigation landmark.
func HasNav(r *Reader) bool { return r.Count(`nav, [role="navigation"]`) > 0 }

// NavLinkCount counts links inside navigation.
func NavLinkCount(r *Reader) int { return r.Count("nav a") }

// SectionCount counts top-level content sections.
func SectionCount(r *Reader) int { return r.Count("section") }

// FormPresent reports any form on the page.
func FormPresent(r *Reader) bool { return r.Count("form") > 0 }

// HasTagline reports a tagline-like element with text.
func HasTagline(r *Reader) bool {
	for _, t := range r.Texts(taglineSel) {
		if len(t) >= 10 {
			return true
		}
	}
	return false
}

// HasVideo reports an embedded video.
func HasVideo(r *Reader) bool { return r.Count(videoSelector) > 0 }

// HasInteractivity reports interactive affordances beyond plain links.
func HasInteractivity(r *Reader) bool { return r.Count(interactiveSel) > 0 }

// HasSchema reports structured-data markup: JSON-LD blocks or microdata
// attributes.
func HasSchema(r *Reader, rawHTML string) bool {
	if r.Count(`script[type="application/ld+json"]`) > 0 {
		return true
	}
	lower := strings.ToLower(rawHTML)
	return strings.Contains(lower, "itemscope") || strings.Contains(lower, "schema.org")
}

// Title returns the document title.
func Title(r *Reader) string {
	ts := r.Texts("title")
	if len(ts) == 0 {
		return ""
	}
	return ts[0]
}

// MetaDescription returns the meta description content.
func MetaDescription(r *Reader) string {
	vals := r.Attrs(`meta[name="description"]`, "content")
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// OgDescription returns the OpenGraph description content.
func OgDescription(r *Reader) string {
	vals := r.Attrs(`meta[property="og:description"]`, "content")
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// HighResImageCount counts images rendered at least 800px wide.
func HighResImageCount(r *Reader) int {
	n := 0
	for _, b := range r.Boxes("img") {
		if b.Width >= highResWidth {
			n++
		}
	}
	return n
}

// CustomPhotoRatio returns the fraction of images not served from known
// stock CDNs. Pages without images return 0.
func CustomPhotoRatio(r *Reader) float64 {
	srcs := r.Attrs("img", "src")
	if len(srcs) == 0 {
		return 0
	}
	custom := 0
	for _, s := range srcs {
		if !IsStockImageURL(s) {
			custom++
		}
	}
	return float64(custom) / float64(len(srcs))
}

// AltCoverage returns the fraction of images carrying non-empty alt text.
// Pages without images count as fully covered.
func AltCoverage(r *Reader) float64 {
	total := r.Count("img")
	if total == 0 {
		return 1
	}
	withAlt := 0
	for _, a := range r.Attrs("img", "alt") {
		if strings.TrimSpace(a) != "" {
			withAlt++
		}
	}
	return float64(withAlt) / float64(total)
}

// InternalLinkCount counts links that stay on the page's host: relative
// hrefs and absolute hrefs with the same hostname.
func InternalLinkCount(r *Reader, pageURL string) int {
	var host string
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Hostname()
	}
	n := 0
	for _, href := range r.Attrs("a", "href") {
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			continue
		}
		u, err := url.Parse(href)
		if err != nil {
			continue
		}
		if u.Hostname() == "" || (host != "" && u.Hostname() == host) {
			n++
		}
	}
	return n
}

// DistinctButtonColors counts the distinct non-empty background colors of
// call-to-action controls.
func DistinctButtonColors(r *Reader) int {
	return distinctNonEmpty(r.Styles(ctaSelector, "background-color"))
}

// DistinctFonts counts the distinct non-empty font families across the
// main text elements.
func DistinctFonts(r *Reader) int {
	return distinctNonEmpty(r.Styles("body, h1, h2, h3, p", "font-family"))
}

// DistinctSectionPaddings counts the distinct non-empty padding values of
// the page sections.
func DistinctSectionPaddings(r *Reader) int {
	return distinctNonEmpty(r.Styles("section", "padding"))
}

// PrimaryFontFamily returns the body font family, or "".
func PrimaryFontFamily(r *Reader) string {
	fams := r.Styles("body", "font-family")
	if len(fams) == 0 {
		return ""
	}
	return fams[0]
}

// HeadingSizes returns the distinct heading font sizes in px, unsorted.
func HeadingSizes(r *Reader) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, v := range r.Styles("h1, h2, h3, h4, h5, h6", "font-size") {
		px := parsePx(v)
		if px <= 0 || seen[px] {
			continue
		}
		seen[px] = true
		out = append(out, px)
	}
	return out
}

// TapTargetAdequacy returns the fraction of interactive elements whose
// boxes are at least 44x44 CSS pixels. Elements with unknown geometry are
// skipped; a page with no measurable interactive elements scores 0.
func TapTargetAdequacy(r *Reader) float64 {
	boxes := r.Boxes("a, button, input, select, textarea")
	measured, adequate := 0, 0
	for _, b := range boxes {
		if b.Width <= 0 || b.Height <= 0 {
			continue
		}
		measured++
		if b.Width >= 44 && b.Height >= 44 {
			adequate++
		}
	}
	if measured == 0 {
		return 0
	}
	return float64(adequate) / float64(measured)
}

func distinctNonEmpty(vals []string) int {
	seen := make(map[string]bool)
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen[v] = true
	}
	return len(seen)
}

func parsePx(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
