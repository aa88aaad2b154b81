package signals

import (
	"regexp"
	"strings"
)

// Strong call-to-action phrases. Matched against button and link text.
var ctaRe = regexp.MustCompile(`(?i)\b(get started|sign up|buy now|shop now|order now|subscribe|book now|try (it )?free|start (your )?free trial|request a quote|get a quote|contact us|learn more|download now|join now|schedule (a )?(call|demo|visit)|get in touch)\b`)

// Trust-signal keyword groups. Each group counts once no matter how many
// hits it has; the group count is the trust-signal strength.
var trustGroups = []*regexp.Regexp{
	regexp.MustCompile(`(?i)testimonial|what our (clients|customers) say|reviews?\b|rated\b`),
	regexp.MustCompile(`(?i)certif(ied|ication)|accredit|licensed|award[- ]winning|iso \d+`),
	regexp.MustCompile(`(?i)trusted by|clients include|as seen (in|on)|featured (in|on)|\b\d[\d,.]* (customers|clients|users)\b`),
	regexp.MustCompile(`(?i)guarantee|money[- ]back|risk[- ]free|no questions asked`),
}

var (
	phoneRe = regexp.MustCompile(`\(?\+?\d[\d\s().-]{7,}\d`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Generic boilerplate phrases that read like an unedited template.
var boilerplatePhrases = []string{
	"welcome to our website",
	"your trusted partner",
	"we offer a wide range",
	"best in class",
	"one stop shop",
	"one-stop shop",
	"quality you can trust",
	"lorem ipsum",
}

// Template demo leftovers. Checked only when the page has enough body to
// not be an honest placeholder.
var templateMarkers = []string{
	"lorem ipsum",
	"confetti",
	"demo content",
	"sample text",
	"placeholder",
	"under construction",
	"coming soon",
}

// Brand narrative markers.
var storyRe = regexp.MustCompile(`(?i)our (story|mission|journey|values)|founded in|since (19|20)\d{2}|we believe|about us`)

// Funnel language.
var (
	valueRe = regexp.MustCompile(`(?i)\b(save|improve|grow|increase|boost|reduce|transform|unlock|simplify|protect)\b`)
	proofRe = regexp.MustCompile(`(?i)testimonial|trusted|rated|review|case stud|success stor|clients`)
)

// Known stock-photo CDNs. Images from here are not custom photography.
var stockHosts = []string{
	"unsplash.com",
	"images.unsplash.com",
	"pexels.com",
	"shutterstock.com",
	"istockphoto.com",
	"gettyimages.com",
	"pixabay.com",
	"placehold",
}

// Font families that read as a deliberate, current typography choice.
var modernFonts = []string{
	"inter", "roboto", "poppins", "montserrat", "lato", "open sans",
	"source sans", "work sans", "dm sans", "helvetica neue", "sf pro",
	"segoe ui", "system-ui", "nunito", "raleway", "manrope",
}

// Titles that begin with these read as unedited defaults.
var genericTitlePrefixes = []string{"home", "services", "about", "contact "}

// CTAMatchCount counts how many of the given texts contain a strong
// call-to-action phrase.
func CTAMatchCount(texts []string) int {
	n := 0
	for _, t := range texts {
		if ctaRe.MatchString(t) {
			n++
		}
	}
	return n
}

// HasCTALanguage reports whether any text contains a CTA phrase.
func HasCTALanguage(text string) bool { return ctaRe.MatchString(text) }

// TrustGroupCount returns how many of the four trust-signal families
// (testimonials, certifications, social proof, guarantees) appear in the
// body text, 0-4.
func TrustGroupCount(body string) int {
	n := 0
	for _, re := range trustGroups {
		if re.MatchString(body) {
			n++
		}
	}
	return n
}

// HasTestimonials reports the testimonial/review family.
func HasTestimonials(body string) bool { return trustGroups[0].MatchString(body) }

// HasCertifications reports the certification/accreditation family.
func HasCertifications(body string) bool { return trustGroups[1].MatchString(body) }

// HasSocialProof reports the social-proof family.
func HasSocialProof(body string) bool { return trustGroups[2].MatchString(body) }

// HasGuarantees reports the guarantee family.
func HasGuarantees(body string) bool { return trustGroups[3].MatchString(body) }

// HasPhone reports whether the text carries a phone-shaped number.
func HasPhone(text string) bool { return phoneRe.MatchString(text) }

// HasEmail reports whether the text carries an email address.
func HasEmail(text string) bool { return emailRe.MatchString(text) }

// HasBoilerplate reports whether the body uses generic template prose.
func HasBoilerplate(body string) bool {
	lower := strings.ToLower(body)
	for _, p := range boilerplatePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// HasTemplateMarkers reports whether demo/template leftovers appear in the
// body or markup.
func HasTemplateMarkers(body, rawHTML string) bool {
	lower := strings.ToLower(body)
	lowerHTML := strings.ToLower(rawHTML)
	for _, m := range templateMarkers {
		if strings.Contains(lower, m) || strings.Contains(lowerHTML, m) {
			return true
		}
	}
	return false
}

// HasStoryLanguage reports whether the body tells a brand story.
func HasStoryLanguage(body string) bool { return storyRe.MatchString(body) }

// HasValueLanguage reports whether the body promises an outcome.
func HasValueLanguage(body string) bool { return valueRe.MatchString(body) }

// HasProofLanguage reports whether the body offers social proof.
func HasProofLanguage(body string) bool { return proofRe.MatchString(body) }

// IsStockImageURL reports whether the image src points at a known stock CDN.
func IsStockImageURL(src string) bool {
	lower := strings.ToLower(src)
	for _, h := range stockHosts {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// IsModernFontStack reports whether a font-family value names a current
// typeface.
func IsModernFontStack(family string) bool {
	lower := strings.ToLower(family)
	for _, f := range modernFonts {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// IsGenericTitle reports whether a page title starts like an unedited
// template default.
func IsGenericTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, p := range genericTitlePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int { return len(strings.Fields(text)) }

// Raw-markup style markers. Computed styles are not needed to notice that
// a stylesheet ships gradients or keyframes at all.

// HasGradients reports gradient usage anywhere in the markup or CSS.
func HasGradients(rawHTML string) bool {
	return strings.Contains(strings.ToLower(rawHTML), "gradient")
}

// HasShadows reports box-shadow usage.
func HasShadows(rawHTML string) bool {
	return strings.Contains(strings.ToLower(rawHTML), "shadow")
}

// HasRoundedCorners reports border-radius usage.
func HasRoundedCorners(rawHTML string) bool {
	lower := strings.ToLower(rawHTML)
	return strings.Contains(lower, "border-radius") || strings.Contains(lower, "rounded")
}

// HasAnimation reports animation or keyframe usage.
func HasAnimation(rawHTML string) bool {
	lower := strings.ToLower(rawHTML)
	return strings.Contains(lower, "@keyframes") || strings.Contains(lower, "animation")
}

// HasTransitions reports CSS transition usage.
func HasTransitions(rawHTML string) bool {
	return strings.Contains(strings.ToLower(rawHTML), "transition")
}
