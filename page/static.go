package page

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Static answers Query calls from a parsed HTML document, without a
// browser. Computed styles degrade to inline style declarations and
// geometry degrades to width/height attributes, which is enough for the
// structural heuristics and for tests.
type Static struct {
	root *html.Node

	mu   sync.Mutex
	sels map[string]cascadia.SelectorGroup
}

// NewStatic parses the document and returns a Static query over it.
func NewStatic(rawHTML string) (*Static, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("page: parse html: %w", err)
	}
	return &Static{root: root, sels: make(map[string]cascadia.SelectorGroup)}, nil
}

func (s *Static) compile(selector string) (cascadia.SelectorGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel, ok := s.sels[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("page: selector %q: %w", selector, err)
	}
	s.sels[selector] = sel
	return sel, nil
}

func (s *Static) match(selector string) ([]*html.Node, error) {
	sel, err := s.compile(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(s.root, sel), nil
}

// Count implements Query.
func (s *Static) Count(selector string) (int, error) {
	nodes, err := s.match(selector)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// Texts implements Query.
func (s *Static) Texts(selector string) ([]string, error) {
	nodes, err := s.match(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, strings.TrimSpace(nodeText(n)))
	}
	return out, nil
}

// Attrs implements Query.
func (s *Static) Attrs(selector, name string) ([]string, error) {
	nodes, err := s.match(selector)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range nodes {
		if v, ok := attr(n, name); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// Styles implements Query. Only inline style declarations are visible to
// the static document; elements without the property yield "".
func (s *Static) Styles(selector, property string) ([]string, error) {
	nodes, err := s.match(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		style, _ := attr(n, "style")
		out = append(out, styleProperty(style, property))
	}
	return out, nil
}

// Boxes implements Query. Geometry is reconstructed from width/height
// attributes and inline style left/top/width/height pixel values; anything
// else is a zero box.
func (s *Static) Boxes(selector string) ([]Box, error) {
	nodes, err := s.match(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Box, 0, len(nodes))
	for _, n := range nodes {
		var b Box
		if v, ok := attr(n, "width"); ok {
			b.Width = parsePx(v)
		}
		if v, ok := attr(n, "height"); ok {
			b.Height = parsePx(v)
		}
		style, _ := attr(n, "style")
		if style != "" {
			if v := styleProperty(style, "left"); v != "" {
				b.X = parsePx(v)
			}
			if v := styleProperty(style, "top"); v != "" {
				b.Y = parsePx(v)
			}
			if v := styleProperty(style, "width"); v != "" {
				b.Width = parsePx(v)
			}
			if v := styleProperty(style, "height"); v != "" {
				b.Height = parsePx(v)
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// styleProperty extracts one declaration value from an inline style string.
func styleProperty(style, property string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), property) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func parsePx(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
