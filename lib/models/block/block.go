// Package block holds the flat list-block document model: an ordered sequence
// of blocks, each optionally tagged with list membership attributes.
package block

import "fmt"

// Model attribute names shared with the document schema and the JSON surface.
const (
	AttrListItemID  = "listItemId"
	AttrListIndent  = "listIndent"
	AttrListType    = "listType"
	AttrTodoChecked = "todoListChecked"
)

// Type is the list type of a block. The zero value marks a block that is not
// a list item.
type Type string

const (
	None     Type = ""
	Bulleted Type = "bulleted"
	Numbered Type = "numbered"
	Todo     Type = "todo"
)

func (t Type) Valid() bool {
	switch t {
	case Bulleted, Numbered, Todo:
		return true
	}
	return false
}

func (t Type) String() string {
	if t == None {
		return "none"
	}
	return string(t)
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return None, fmt.Errorf("unknown list type: %q", s)
	}
	return t, nil
}

// ListBlock is one content block of the document. Consecutive blocks sharing
// an ID form a single list item (an id-group); the first of them is the anchor.
type ListBlock struct {
	ID      string
	Indent  int
	Type    Type
	Checked bool
	Content Content
}

func (b ListBlock) IsListItem() bool {
	return b.Type.Valid()
}

// WithoutListAttributes returns the block with every list attribute cleared.
func (b ListBlock) WithoutListAttributes() ListBlock {
	return ListBlock{Content: b.Content}
}

// Clone copies the block, including nested block quote content.
func (b ListBlock) Clone() ListBlock {
	if q, ok := b.Content.(BlockQuote); ok {
		b.Content = BlockQuote{Blocks: CloneAll(q.Blocks)}
	}
	if t, ok := b.Content.(Table); ok {
		rows := make([][]string, len(t.Rows))
		for i, r := range t.Rows {
			rows[i] = append([]string(nil), r...)
		}
		b.Content = Table{Rows: rows}
	}
	return b
}

func CloneAll(blocks []ListBlock) []ListBlock {
	if blocks == nil {
		return nil
	}
	out := make([]ListBlock, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
