package upcast

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type nodeClass int

const (
	nodeInline nodeClass = iota
	nodeSkip
	nodeList
	nodeContainer
	nodeBlock
	nodeCheckbox
)

func classify(n *html.Node) nodeClass {
	switch n.Type {
	case html.TextNode:
		return nodeInline
	case html.ElementNode:
	default:
		return nodeSkip
	}

	switch n.DataAtom {
	case atom.Ul, atom.Ol:
		return nodeList
	case atom.Li, atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer,
		atom.Nav, atom.Aside, atom.Body, atom.Html, atom.Center, atom.Form, atom.Tbody,
		atom.Thead, atom.Tfoot, atom.Tr, atom.Td, atom.Th:
		return nodeContainer
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote,
		atom.Table, atom.Figure, atom.Pre, atom.Hr, atom.Dl, atom.Address, atom.Details:
		return nodeBlock
	case atom.Script, atom.Style, atom.Head, atom.Template, atom.Noscript, atom.Title,
		atom.Meta, atom.Link:
		return nodeSkip
	case atom.Input:
		if isCheckbox(n) {
			return nodeCheckbox
		}
		return nodeSkip
	}
	return nodeInline
}

func isCheckbox(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Input {
		return false
	}
	t, _ := attr(n, "type")
	return strings.EqualFold(strings.TrimSpace(t), "checkbox")
}

// isChecked treats the presence of the checked attribute as checked,
// whatever its value.
func isChecked(n *html.Node) bool {
	_, ok := attr(n, "checked")
	return ok
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func attrMap(n *html.Node) map[string]string {
	if n == nil {
		return nil
	}
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func isBlank(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	case html.CommentNode:
		return true
	}
	return false
}

// firstMeaningful skips whitespace text and comments.
func firstMeaningful(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			return c
		}
	}
	return nil
}

// leadsWithCheckbox reports whether the first meaningful descendant of n,
// following label and span wrappers, is a checkbox.
func leadsWithCheckbox(n *html.Node) bool {
	first := firstMeaningful(n)
	switch {
	case first == nil:
		return false
	case isCheckbox(first):
		return true
	case first.Type == html.ElementNode && (first.DataAtom == atom.Label || first.DataAtom == atom.Span):
		return leadsWithCheckbox(first)
	}
	return false
}

func isCheckboxWrapper(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom != atom.Label && n.DataAtom != atom.Span {
		return false
	}
	return leadsWithCheckbox(n)
}
