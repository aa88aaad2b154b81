// Package signals holds the shared detection vocabulary of the scoring
// stages: keyword lexicons over body text, marker checks over raw HTML,
// and structural probes over a page query. The expert panel and the
// perception model both read from here so their findings stay comparable.
package signals

import "github.com/sitejury/sitejury/page"

// Reader wraps a page.Query with a sticky error so probe chains stay
// linear. The first failing call wins; later calls return zero values.
// Callers check Err once at the end and decide what a failure means.
type Reader struct {
	Q   page.Query
	Err error
}

// NewReader wraps q.
func NewReader(q page.Query) *Reader {
	return &Reader{Q: q}
}

// Count returns the number of matches for the selector.
func (r *Reader) Count(selector string) int {
	if r.Err != nil {
		return 0
	}
	n, err := r.Q.Count(selector)
	if err != nil {
		r.Err = err
		return 0
	}
	return n
}

// Texts returns the visible texts of the matches.
func (r *Reader) Texts(selector string) []string {
	if r.Err != nil {
		return nil
	}
	out, err := r.Q.Texts(selector)
	if err != nil {
		r.Err = err
		return nil
	}
	return out
}

// Attrs returns the named attribute of the matches.
func (r *Reader) Attrs(selector, name string) []string {
	if r.Err != nil {
		return nil
	}
	out, err := r.Q.Attrs(selector, name)
	if err != nil {
		r.Err = err
		return nil
	}
	return out
}

// Styles returns a style property of the matches.
func (r *Reader) Styles(selector, property string) []string {
	if r.Err != nil {
		return nil
	}
	out, err := r.Q.Styles(selector, property)
	if err != nil {
		r.Err = err
		return nil
	}
	return out
}

// Boxes returns the bounding boxes of the matches.
func (r *Reader) Boxes(selector string) []page.Box {
	if r.Err != nil {
		return nil
	}
	out, err := r.Q.Boxes(selector)
	if err != nil {
		r.Err = err
		return nil
	}
	return out
}
