package scraper

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/liveprogress/expectancy/internal/config"
	"github.com/liveprogress/expectancy/internal/sentinel"
	"github.com/liveprogress/expectancy/pkg/types"
)

// cellsPerRow is the number of leading cells a country row must provide:
// name, all, male, female.
const cellsPerRow = 4

// Selector identifies the data table as the Index-th (zero-based) element,
// in document order, whose class attribute contains Class.
type Selector struct {
	Class string
	Index int
}

// Parser extracts country rows from the selected table.
type Parser struct {
	Selector Selector

	// Strict makes a linked row with fewer than four cells fail the whole
	// parse instead of being skipped.
	Strict bool
}

// NewParser returns a Parser configured from src.
func NewParser(src config.Source) *Parser {
	return &Parser{
		Selector: Selector{Class: src.TableClass, Index: src.TableIndex},
		Strict:   src.Strict,
	}
}

// Parse converts the selected table in htmlText into a Table.
//
// Rows without cells, or whose first cell has no link, are skipped. A cell
// that is not a number, or is NaN, infinite or negative, fails the parse with
// sentinel.ErrNumericParse. When a
// country appears twice the later row wins.
func (p *Parser) Parse(htmlText string) (types.Table, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrTableNotFound, "parse html: %v", err)
	}

	matches := findAll(doc, p.Selector.Index+1, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, p.Selector.Class)
	})
	if p.Selector.Index < 0 || len(matches) <= p.Selector.Index {
		return nil, ewrap.Wrapf(sentinel.ErrTableNotFound,
			"want element %d with class %q, found %d", p.Selector.Index, p.Selector.Class, len(matches))
	}
	table := matches[p.Selector.Index]

	bodies := findAll(table, 1, isElement(atom.Tbody))
	if len(bodies) == 0 {
		return nil, ewrap.Wrapf(sentinel.ErrTableNotFound, "element %d with class %q has no tbody",
			p.Selector.Index, p.Selector.Class)
	}

	out := make(types.Table)
	for i, tr := range findAll(bodies[0], -1, isElement(atom.Tr)) {
		cells := findAll(tr, cellsPerRow, isElement(atom.Td))
		if len(cells) == 0 {
			continue
		}
		name, ok := linkText(cells[0])
		if !ok {
			continue
		}
		if len(cells) < cellsPerRow {
			if p.Strict {
				return nil, ewrap.Wrapf(sentinel.ErrRowShape, "row %d (%s): %d cells, want %d",
					i, name, len(cells), cellsPerRow)
			}
			slog.Debug("scraper: skipping short row", "row", i, "country", name, "cells", len(cells))
			continue
		}

		var vals [cellsPerRow - 1]float64
		for j, cell := range cells[1:] {
			raw := strings.TrimSpace(text(cell))
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, ewrap.Wrapf(sentinel.ErrNumericParse, "row %d (%s) column %d: %q", i, name, j+2, raw)
			}
			vals[j] = v
		}
		stat := types.CountryStatistic{All: vals[0], Male: vals[1], Female: vals[2]}
		if !stat.Valid() {
			return nil, ewrap.Wrapf(sentinel.ErrNumericParse, "row %d (%s): values must be finite and non-negative: %+v",
				i, name, stat)
		}
		out[name] = stat
	}

	delete(out, types.CommonKey)
	return out, nil
}

// findAll returns descendants of root (root excluded) matching pred, in
// document order. limit < 0 means no limit.
func findAll(root *html.Node, limit int, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				out = append(out, c)
				if limit >= 0 && len(out) >= limit {
					return false
				}
			}
			if !walk(c) {
				return false
			}
		}
		return true
	}
	if limit != 0 {
		walk(root)
	}
	return out
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Namespace != "" || attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// linkText returns the text of the first anchor under n.
func linkText(n *html.Node) (string, bool) {
	links := findAll(n, 1, isElement(atom.A))
	if len(links) == 0 {
		return "", false
	}
	return strings.TrimSpace(text(links[0])), true
}

// text concatenates every text node under n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
