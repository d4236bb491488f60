package io

import (
	"strings"

	"github.com/ether/etherpad-todolist/lib/models/block"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const markdownIndent = "  "

// ExportMarkdown writes blocks as Markdown. Nested list items are indented
// two spaces per level; todo items use GFM task markers.
func ExportMarkdown(blocks []block.ListBlock) string {
	out := markdownSequence(blocks)
	if out == "" {
		return ""
	}
	return out + "\n"
}

func markdownSequence(blocks []block.ListBlock) string {
	var pieces []string
	for _, region := range block.Regions(blocks) {
		if region.List {
			pieces = append(pieces, markdownList(blocks[region.Start:region.End]))
		} else {
			pieces = append(pieces, markdownContent(blocks[region.Start].Content))
		}
	}
	return strings.Join(pieces, "\n\n")
}

func listMarker(b block.ListBlock) string {
	switch b.Type {
	case block.Numbered:
		return "1. "
	case block.Todo:
		if b.Checked {
			return "- [x] "
		}
		return "- [ ] "
	}
	return "- "
}

func markdownList(blocks []block.ListBlock) string {
	var lines []string
	for _, span := range block.Groups(blocks) {
		anchor := blocks[span.Start]
		marker := listMarker(anchor)
		pad := strings.Repeat(markdownIndent, anchor.Indent)
		continuation := pad + strings.Repeat(" ", len(marker))

		lines = append(lines, pad+marker+indentLines(markdownContent(anchor.Content), continuation))
		for _, b := range blocks[span.Start+1 : span.End] {
			lines = append(lines, "", continuation+indentLines(markdownContent(b.Content), continuation))
		}
	}
	return strings.Join(lines, "\n")
}

// indentLines prefixes every line but the first with prefix.
func indentLines(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func markdownContent(c block.Content) string {
	switch c := c.(type) {
	case block.Paragraph:
		return inlineMarkdown(c.Inline)
	case block.Heading:
		// heading1 is h2 in the data view
		return strings.Repeat("#", c.Level+1) + " " + inlineMarkdown(c.Inline)
	case block.BlockQuote:
		inner := markdownSequence(c.Blocks)
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			if l == "" {
				lines[i] = ">"
			} else {
				lines[i] = "> " + l
			}
		}
		return strings.Join(lines, "\n")
	case block.Table:
		return markdownTable(c)
	case block.Other:
		return c.HTML
	}
	return ""
}

func markdownTable(t block.Table) string {
	if len(t.Rows) == 0 {
		return ""
	}
	width := 0
	for _, r := range t.Rows {
		width = max(width, len(r))
	}

	row := func(cells []string) string {
		var sb strings.Builder
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(cells) {
				cell = strings.ReplaceAll(inlineMarkdown(cells[i]), "|", `\|`)
			}
			sb.WriteString(" " + cell + " |")
		}
		return sb.String()
	}

	lines := []string{row(t.Rows[0]), "|" + strings.Repeat(" --- |", width)}
	for _, r := range t.Rows[1:] {
		lines = append(lines, row(r))
	}
	return strings.Join(lines, "\n")
}

// inlineMarkdown converts inline markup to Markdown emphasis, code and links.
// Unknown elements contribute their text.
func inlineMarkdown(markup string) string {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return markup
	}
	var sb strings.Builder
	for _, n := range nodes {
		writeInlineMarkdown(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

func writeInlineMarkdown(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(strings.ReplaceAll(n.Data, "\u00a0", " "))
		return
	case html.ElementNode:
	default:
		return
	}

	wrap := ""
	switch n.DataAtom {
	case atom.Strong, atom.B:
		wrap = "**"
	case atom.Em, atom.I:
		wrap = "*"
	case atom.S, atom.Del, atom.Strike:
		wrap = "~~"
	case atom.Code:
		wrap = "`"
	case atom.Br:
		sb.WriteString("<br>")
		return
	case atom.A:
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
			}
		}
		sb.WriteString("[")
		writeInlineChildren(sb, n)
		sb.WriteString("](" + href + ")")
		return
	case atom.Input, atom.Script, atom.Style:
		return
	}

	sb.WriteString(wrap)
	writeInlineChildren(sb, n)
	sb.WriteString(wrap)
}

func writeInlineChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInlineMarkdown(sb, c)
	}
}
