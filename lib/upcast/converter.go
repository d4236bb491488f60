// Package upcast converts list markup (ul, ol, li and todo checkboxes) into
// the flat list-block model.
package upcast

import (
	"strings"

	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/hooks/events"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/ether/etherpad-todolist/lib/uid"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Converter struct {
	ids    uid.Source
	hooks  *hooks.Hook
	logger *zap.SugaredLogger
}

func NewConverter(ids uid.Source, hook *hooks.Hook, logger *zap.SugaredLogger) *Converter {
	if ids == nil {
		ids = uid.NewRandom()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Converter{
		ids:    ids,
		hooks:  hook,
		logger: logger,
	}
}

func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

// Convert parses an HTML fragment and returns its blocks. Malformed markup
// never fails the conversion; it degrades to the closest valid sequence.
func (c *Converter) Convert(markup string) []block.ListBlock {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext())
	if err != nil {
		c.logger.Warnw("could not parse markup", "error", err)
		return nil
	}
	return c.ConvertNodes(nodes)
}

// ConvertNodes converts already parsed sibling nodes.
func (c *Converter) ConvertNodes(nodes []*html.Node) []block.ListBlock {
	w := walker{c: c}
	return w.blocks(nodes)
}

type walker struct {
	c *Converter
}

// blocks converts nodes outside of any list.
func (w *walker) blocks(nodes []*html.Node) []block.ListBlock {
	var out []block.ListBlock
	var run inlineRun

	flush := func() {
		if run.hasContent() {
			out = append(out, block.ListBlock{Content: block.Paragraph{Inline: run.markup()}})
		}
		run.reset()
	}

	for _, n := range nodes {
		switch classify(n) {
		case nodeInline:
			run.add(n)
		case nodeList:
			flush()
			out = append(out, w.list(n, 0)...)
		case nodeContainer:
			flush()
			out = append(out, w.blocks(children(n))...)
		case nodeBlock:
			flush()
			if content, ok := w.content(n); ok {
				out = append(out, block.ListBlock{Content: content})
			}
		case nodeCheckbox, nodeSkip:
		}
	}
	flush()
	return out
}

// list converts a ul or ol whose items sit at indent.
func (w *walker) list(n *html.Node, indent int) []block.ListBlock {
	ambient := block.Bulleted
	if n.DataAtom == atom.Ol {
		ambient = block.Numbered
	}

	var out []block.ListBlock
	var loose []*html.Node

	flushLoose := func() {
		if hasContent(loose) || containsCheckbox(loose) {
			out = append(out, w.item(loose, n, indent, ambient)...)
		}
		loose = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Li:
			flushLoose()
			out = append(out, w.item(children(c), c, indent, ambient)...)
		case classify(c) == nodeList:
			flushLoose()
			if len(out) == 0 {
				w.c.logger.Debugw("nested list without a parent item", "tag", c.Data)
				out = append(out, w.anchor(block.ListBlock{Indent: indent, Type: ambient, Content: block.Paragraph{}}, n))
			}
			out = append(out, w.list(c, indent+1)...)
		case isBlank(c):
		default:
			loose = append(loose, c)
		}
	}
	flushLoose()
	return out
}

func containsCheckbox(nodes []*html.Node) bool {
	for _, n := range nodes {
		if isCheckbox(n) || isCheckboxWrapper(n) {
			return true
		}
	}
	return false
}

// segment is the part of an li that becomes one id-group.
type segment struct {
	id           string
	typ          block.Type
	checked      bool
	emitted      bool
	fromCheckbox bool
}

// item converts the content of one li. A checkbox after content, or content
// after a nested list, starts a new item at the same indent.
func (w *walker) item(nodes []*html.Node, source *html.Node, indent int, ambient block.Type) []block.ListBlock {
	var out []block.ListBlock
	var run inlineRun
	seg := segment{typ: ambient}
	// Set while the last thing added was a nested list; a following
	// sibling list nests under the same item.
	afterList := false

	emit := func(content block.Content) {
		afterList = false
		b := block.ListBlock{ID: seg.id, Indent: indent, Type: seg.typ, Content: content}
		if seg.typ == block.Todo {
			b.Checked = seg.checked
		}
		if !seg.emitted {
			b = w.anchor(b, source)
			seg.id = b.ID
			seg.typ = b.Type
			seg.checked = b.Checked
			seg.emitted = true
		}
		out = append(out, b)
	}

	flush := func() {
		if run.hasContent() {
			emit(block.Paragraph{Inline: run.markup()})
		}
		run.reset()
	}

	for _, n := range flattenItem(nodes) {
		if isDescription(n) {
			// The label description is the anchor paragraph, even when empty.
			for _, c := range children(n) {
				run.add(c)
			}
			emit(block.Paragraph{Inline: run.markup()})
			run.reset()
			continue
		}

		switch classify(n) {
		case nodeCheckbox:
			afterList = false
			if seg.emitted || run.hasContent() {
				flush()
				seg = segment{typ: block.Todo, checked: isChecked(n), fromCheckbox: true}
				continue
			}
			run.reset()
			seg.typ = block.Todo
			seg.checked = isChecked(n)
			seg.fromCheckbox = true
		case nodeInline:
			run.add(n)
		case nodeList:
			flush()
			if !seg.emitted && !afterList {
				emit(block.Paragraph{})
			}
			out = append(out, w.list(n, indent+1)...)
			seg = segment{typ: seg.typ, checked: seg.checked}
			afterList = len(out) > 0
		case nodeBlock:
			content, ok := w.content(n)
			if !ok {
				continue
			}
			if !block.AllowsListAttributes(content) {
				// Opaque blocks stay inside the item as inline markup.
				w.c.logger.Debugw("unmodelled block inside list item", "tag", n.Data)
				run.add(n)
				continue
			}
			flush()
			emit(content)
		case nodeContainer, nodeSkip:
		}
	}
	flush()

	if !seg.emitted && (len(out) == 0 || seg.fromCheckbox) {
		emit(block.Paragraph{})
	}
	return out
}

// anchor assigns a fresh id to the first block of an item and runs the
// upcast hooks on it.
func (w *walker) anchor(b block.ListBlock, source *html.Node) block.ListBlock {
	b.ID = w.c.ids.Next()
	if w.c.hooks != nil {
		var tag string
		if source != nil {
			tag = source.Data
		}
		w.c.hooks.ExecuteListItemUpcastHooks(&events.ListItemUpcastContext{
			Block:      &b,
			SourceTag:  tag,
			SourceAttr: attrMap(source),
		})
	}
	return b
}

// flattenItem unwraps checkbox labels and transparent containers so the
// item content is a flat run of inline nodes, blocks, lists and checkboxes.
func flattenItem(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		switch {
		case isCheckboxWrapper(n):
			out = append(out, unwrapLabel(n)...)
		case n.Type == html.ElementNode && hasClass(n, "ck-list-bogus-paragraph"):
			out = append(out, flattenItem(children(n))...)
		case n.Type == html.ElementNode && n.DataAtom == atom.P && isCheckbox(firstMeaningful(n)):
			out = append(out, firstMeaningful(n), n)
		case classify(n) == nodeContainer:
			out = append(out, flattenItem(children(n))...)
		default:
			out = append(out, n)
		}
	}
	return out
}

func unwrapLabel(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isCheckbox(c):
			out = append(out, c)
		case isCheckboxWrapper(c):
			out = append(out, unwrapLabel(c)...)
		default:
			out = append(out, c)
		}
	}
	return out
}

func isDescription(n *html.Node) bool {
	return n.Type == html.ElementNode && hasClass(n, "todo-list__label__description")
}

// content maps a block element to model content.
func (w *walker) content(n *html.Node) (block.Content, bool) {
	switch n.DataAtom {
	case atom.P:
		return block.Paragraph{Inline: serializeInline(children(n))}, true
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return block.Heading{Level: headingLevel(n.DataAtom), Inline: serializeInline(children(n))}, true
	case atom.Blockquote:
		return block.BlockQuote{Blocks: w.blocks(children(n))}, true
	case atom.Table:
		return block.Table{Rows: tableRows(n)}, true
	case atom.Figure:
		if t := findTable(n); t != nil {
			return block.Table{Rows: tableRows(t)}, true
		}
	}
	return block.Other{Tag: n.Data, HTML: outerHTML(n)}, true
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1, atom.H2:
		return 1
	case atom.H3:
		return 2
	}
	return block.MaxHeadingLevel
}

func findTable(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Table {
			return c
		}
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

func tableRows(t *html.Node) [][]string {
	rows := [][]string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				rows = append(rows, tableCells(c))
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			}
		}
	}
	walk(t)
	return rows
}

func tableCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, cellInline(c))
		}
	}
	return cells
}

// cellInline joins the paragraphs of a table cell with line breaks.
func cellInline(cell *html.Node) string {
	var parts []string
	var run inlineRun
	flush := func() {
		if run.hasContent() {
			parts = append(parts, run.markup())
		}
		run.reset()
	}
	for _, n := range children(cell) {
		switch classify(n) {
		case nodeBlock, nodeContainer:
			flush()
			if inline := serializeInline(children(n)); inline != "" {
				parts = append(parts, inline)
			}
		case nodeList, nodeCheckbox, nodeSkip:
			flush()
		default:
			run.add(n)
		}
	}
	flush()
	return strings.Join(parts, "<br>")
}
