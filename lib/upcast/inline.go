package upcast

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRun = regexp.MustCompile(`[ \t\n\r\f]+`)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")
var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")

var voidElements = map[atom.Atom]bool{
	atom.Br: true, atom.Img: true, atom.Wbr: true, atom.Hr: true, atom.Area: true,
	atom.Embed: true, atom.Source: true, atom.Track: true, atom.Col: true,
}

var mediaElements = map[atom.Atom]bool{
	atom.Img: true, atom.Svg: true, atom.Video: true, atom.Audio: true, atom.Iframe: true,
	atom.Object: true, atom.Embed: true, atom.Canvas: true, atom.Math: true,
}

// inlineRun collects consecutive inline nodes that become one paragraph.
type inlineRun struct {
	nodes []*html.Node
}

func (r *inlineRun) add(n *html.Node) {
	r.nodes = append(r.nodes, n)
}

func (r *inlineRun) reset() {
	r.nodes = r.nodes[:0]
}

func (r *inlineRun) hasContent() bool {
	return hasContent(r.nodes)
}

func (r *inlineRun) markup() string {
	return serializeInline(r.nodes)
}

func hasContent(nodes []*html.Node) bool {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				return true
			}
		case html.ElementNode:
			if mediaElements[n.DataAtom] {
				return true
			}
			if n.DataAtom == atom.Input || n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				continue
			}
			if hasContent(children(n)) {
				return true
			}
		}
	}
	return false
}

// serializeInline renders inline nodes with collapsed whitespace. Form
// controls, scripts and comments are dropped.
func serializeInline(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeInline(&sb, n, false)
	}
	return strings.TrimSpace(sb.String())
}

// writeInline keeps whitespace as is inside preformatted elements.
func writeInline(sb *strings.Builder, n *html.Node, preformatted bool) {
	switch n.Type {
	case html.TextNode:
		if preformatted {
			sb.WriteString(textEscaper.Replace(n.Data))
			return
		}
		sb.WriteString(textEscaper.Replace(whitespaceRun.ReplaceAllString(n.Data, " ")))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Input, atom.Script, atom.Style, atom.Template:
		return
	}

	sb.WriteString("<")
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		sb.WriteString(" ")
		if a.Namespace != "" {
			sb.WriteString(a.Namespace)
			sb.WriteString(":")
		}
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.Val))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")

	if voidElements[n.DataAtom] {
		return
	}

	preformatted = preformatted || n.DataAtom == atom.Pre || n.DataAtom == atom.Textarea
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInline(sb, c, preformatted)
	}

	sb.WriteString("</")
	sb.WriteString(n.Data)
	sb.WriteString(">")
}

// outerHTML renders a node verbatim, used for blocks kept as opaque content.
func outerHTML(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
