package page

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
)

// Live answers Query calls by evaluating JavaScript in a rod page. All
// reads go through single Eval round-trips returning JSON, so one call is
// one CDP message.
type Live struct {
	page *rod.Page
	ctx  context.Context
}

// NewLive wraps an already-navigated rod page. The context bounds every
// query issued through it.
func NewLive(ctx context.Context, p *rod.Page) *Live {
	return &Live{page: p, ctx: ctx}
}

// Count implements Query.
func (l *Live) Count(selector string) (int, error) {
	res, err := l.page.Context(l.ctx).Eval(
		`(sel) => document.querySelectorAll(sel).length`, selector)
	if err != nil {
		return 0, fmt.Errorf("page: count %q: %w", selector, err)
	}
	return res.Value.Int(), nil
}

// Texts implements Query.
func (l *Live) Texts(selector string) ([]string, error) {
	res, err := l.page.Context(l.ctx).Eval(
		`(sel) => [...document.querySelectorAll(sel)].map(e => (e.innerText || e.value || '').trim())`,
		selector)
	if err != nil {
		return nil, fmt.Errorf("page: texts %q: %w", selector, err)
	}
	var out []string
	for _, v := range res.Value.Arr() {
		out = append(out, v.Str())
	}
	return out, nil
}

// Attrs implements Query.
func (l *Live) Attrs(selector, name string) ([]string, error) {
	res, err := l.page.Context(l.ctx).Eval(
		`(sel, name) => [...document.querySelectorAll(sel)]
			.map(e => e.getAttribute(name))
			.filter(v => v !== null)`,
		selector, name)
	if err != nil {
		return nil, fmt.Errorf("page: attrs %q[%s]: %w", selector, name, err)
	}
	var out []string
	for _, v := range res.Value.Arr() {
		out = append(out, v.Str())
	}
	return out, nil
}

// Styles implements Query using getComputedStyle, so stylesheet rules are
// visible, not only inline declarations.
func (l *Live) Styles(selector, property string) ([]string, error) {
	res, err := l.page.Context(l.ctx).Eval(
		`(sel, prop) => [...document.querySelectorAll(sel)]
			.map(e => getComputedStyle(e).getPropertyValue(prop))`,
		selector, property)
	if err != nil {
		return nil, fmt.Errorf("page: styles %q[%s]: %w", selector, property, err)
	}
	var out []string
	for _, v := range res.Value.Arr() {
		out = append(out, v.Str())
	}
	return out, nil
}

// Boxes implements Query using getBoundingClientRect offset by the scroll
// position, so coordinates are document-relative.
func (l *Live) Boxes(selector string) ([]Box, error) {
	res, err := l.page.Context(l.ctx).Eval(
		`(sel) => [...document.querySelectorAll(sel)].map(e => {
			const r = e.getBoundingClientRect();
			return {x: r.x + window.scrollX, y: r.y + window.scrollY, width: r.width, height: r.height};
		})`, selector)
	if err != nil {
		return nil, fmt.Errorf("page: boxes %q: %w", selector, err)
	}
	var out []Box
	for _, v := range res.Value.Arr() {
		out = append(out, Box{
			X:      v.Get("x").Num(),
			Y:      v.Get("y").Num(),
			Width:  v.Get("width").Num(),
			Height: v.Get("height").Num(),
		})
	}
	return out, nil
}
