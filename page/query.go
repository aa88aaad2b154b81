// Package page abstracts the queries the scoring heuristics need from a
// rendered page: selector counts, computed styles, bounding boxes, text
// and attribute reads. Two implementations exist: Live drives a rod page
// over CDP, Static answers from a parsed HTML document.
package page

// Box is an axis-aligned bounding box in CSS pixels, relative to the
// document origin.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Intersects reports whether two boxes overlap. Zero-area boxes never
// intersect anything.
func (b Box) Intersects(o Box) bool {
	if b.Width <= 0 || b.Height <= 0 || o.Width <= 0 || o.Height <= 0 {
		return false
	}
	return b.X < o.X+o.Width && o.X < b.X+b.Width &&
		b.Y < o.Y+o.Height && o.Y < b.Y+b.Height
}

// Query is the capability surface heuristics are written against. All
// methods are read-only; implementations must be safe for concurrent
// use, since the expert panel and the perception model share one Query
// across goroutines.
type Query interface {
	// Count returns the number of elements matching the CSS selector.
	Count(selector string) (int, error)

	// Texts returns the visible text content of each matching element,
	// in document order.
	Texts(selector string) ([]string, error)

	// Attrs returns the named attribute of each matching element that
	// carries it, in document order.
	Attrs(selector, name string) ([]string, error)

	// Styles returns the value of a style property for each matching
	// element. The live implementation reads computed styles; the static
	// one falls back to inline style declarations.
	Styles(selector, property string) ([]string, error)

	// Boxes returns the bounding box of each matching element. Elements
	// whose geometry is unknown are reported as zero boxes.
	Boxes(selector string) ([]Box, error)
}
