package block

// Kind enumerates the block payload variants.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBlockQuote
	KindTable
	KindOther
)

var kindNames = map[Kind]string{
	KindParagraph:  "paragraph",
	KindHeading:    "heading",
	KindBlockQuote: "blockQuote",
	KindTable:      "table",
	KindOther:      "other",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func parseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Content is the payload of a block. The set of implementations is closed:
// Paragraph, Heading, BlockQuote, Table and Other.
type Content interface {
	Kind() Kind
	content()
}

// Paragraph is a run of inline markup.
type Paragraph struct {
	Inline string
}

// Heading is a model heading (heading1..heading3) holding inline markup.
type Heading struct {
	Level  int
	Inline string
}

// BlockQuote owns a nested block sequence.
type BlockQuote struct {
	Blocks []ListBlock
}

// Table is a grid of cells, each holding inline markup.
type Table struct {
	Rows [][]string
}

// Other is a block the schema does not model; HTML is its outer markup.
type Other struct {
	Tag  string
	HTML string
}

func (Paragraph) Kind() Kind  { return KindParagraph }
func (Heading) Kind() Kind    { return KindHeading }
func (BlockQuote) Kind() Kind { return KindBlockQuote }
func (Table) Kind() Kind      { return KindTable }
func (Other) Kind() Kind      { return KindOther }

func (Paragraph) content()  {}
func (Heading) content()    {}
func (BlockQuote) content() {}
func (Table) content()      {}
func (Other) content()      {}

// AllowsListAttributes reports whether the schema permits list attributes on
// a block with this content.
func AllowsListAttributes(c Content) bool {
	switch c.(type) {
	case Paragraph, Heading, BlockQuote, Table:
		return true
	case Other, nil:
		return false
	}
	return false
}

// IsTextBearing reports whether an anchor with this content wraps its text in
// the checkbox label description.
func IsTextBearing(c Content) bool {
	_, ok := c.(Paragraph)
	return ok
}

// MaxHeadingLevel is the deepest model heading (heading3, rendered as h4).
const MaxHeadingLevel = 3
