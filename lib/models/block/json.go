package block

import (
	"encoding/json"
	"fmt"
)

type contentJSON struct {
	Kind   string      `json:"kind"`
	Level  int         `json:"level,omitempty"`
	HTML   string      `json:"html,omitempty"`
	Tag    string      `json:"tag,omitempty"`
	Rows   [][]string  `json:"rows,omitempty"`
	Blocks []ListBlock `json:"blocks,omitempty"`
}

type listBlockJSON struct {
	ListItemID      string       `json:"listItemId,omitempty"`
	ListIndent      *int         `json:"listIndent,omitempty"`
	ListType        string       `json:"listType,omitempty"`
	TodoListChecked bool         `json:"todoListChecked,omitempty"`
	Content         *contentJSON `json:"content"`
}

func (b ListBlock) MarshalJSON() ([]byte, error) {
	out := listBlockJSON{}
	if b.IsListItem() {
		indent := b.Indent
		out.ListItemID = b.ID
		out.ListIndent = &indent
		out.ListType = string(b.Type)
		out.TodoListChecked = b.Checked
	}

	c, err := encodeContent(b.Content)
	if err != nil {
		return nil, err
	}
	out.Content = c

	return json.Marshal(out)
}

func (b *ListBlock) UnmarshalJSON(data []byte) error {
	var in listBlockJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var decoded ListBlock
	if in.ListType != "" {
		t, err := ParseType(in.ListType)
		if err != nil {
			return err
		}
		decoded.Type = t
		decoded.ID = in.ListItemID
		if in.ListIndent != nil {
			decoded.Indent = *in.ListIndent
		}
		decoded.Checked = in.TodoListChecked
	}

	c, err := decodeContent(in.Content)
	if err != nil {
		return err
	}
	decoded.Content = c

	*b = decoded
	return nil
}

func encodeContent(c Content) (*contentJSON, error) {
	switch v := c.(type) {
	case Paragraph:
		return &contentJSON{Kind: KindParagraph.String(), HTML: v.Inline}, nil
	case Heading:
		return &contentJSON{Kind: KindHeading.String(), Level: v.Level, HTML: v.Inline}, nil
	case BlockQuote:
		return &contentJSON{Kind: KindBlockQuote.String(), Blocks: v.Blocks}, nil
	case Table:
		return &contentJSON{Kind: KindTable.String(), Rows: v.Rows}, nil
	case Other:
		return &contentJSON{Kind: KindOther.String(), Tag: v.Tag, HTML: v.HTML}, nil
	case nil:
		return &contentJSON{Kind: KindParagraph.String()}, nil
	}
	return nil, fmt.Errorf("unsupported content %T", c)
}

func decodeContent(in *contentJSON) (Content, error) {
	if in == nil {
		return Paragraph{}, nil
	}
	kind, ok := parseKind(in.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown content kind: %q", in.Kind)
	}

	switch kind {
	case KindParagraph:
		return Paragraph{Inline: in.HTML}, nil
	case KindHeading:
		level := in.Level
		if level < 1 || level > MaxHeadingLevel {
			return nil, fmt.Errorf("heading level %d out of range", in.Level)
		}
		return Heading{Level: level, Inline: in.HTML}, nil
	case KindBlockQuote:
		return BlockQuote{Blocks: in.Blocks}, nil
	case KindTable:
		return Table{Rows: in.Rows}, nil
	case KindOther:
		return Other{Tag: in.Tag, HTML: in.HTML}, nil
	}
	return nil, fmt.Errorf("unknown content kind: %q", in.Kind)
}
