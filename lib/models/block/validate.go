package block

import "fmt"

// Invariant rule names reported by InvariantError.
const (
	RuleAttributes = "attributes"
	RuleIndent     = "indent"
	RuleContiguous = "contiguous"
	RuleGroup      = "group"
	RuleChecked    = "checked"
)

// InvariantError describes the first block that breaks the model invariants.
type InvariantError struct {
	Index int
	Rule  string
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid list block %d (%s): %s", e.Index, e.Rule, e.Msg)
}

func invalid(i int, rule, format string, args ...any) *InvariantError {
	return &InvariantError{Index: i, Rule: rule, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks a block sequence against the model invariants. Nested block
// quote sequences are validated on their own.
func Validate(blocks []ListBlock) error {
	seen := make(map[string]struct{})
	var prev *ListBlock

	for i := range blocks {
		b := &blocks[i]

		if q, ok := b.Content.(BlockQuote); ok {
			if err := Validate(q.Blocks); err != nil {
				return invalid(i, RuleAttributes, "block quote: %v", err)
			}
		}

		if !b.IsListItem() {
			if b.Type != None {
				return invalid(i, RuleAttributes, "unknown list type %q", string(b.Type))
			}
			if b.ID != "" || b.Indent != 0 || b.Checked {
				return invalid(i, RuleAttributes, "list attributes on a block without list type")
			}
			prev = nil
			continue
		}

		if b.ID == "" {
			return invalid(i, RuleAttributes, "list item without id")
		}
		if !AllowsListAttributes(b.Content) {
			return invalid(i, RuleAttributes, "%s cannot be a list item", kindOf(b.Content))
		}
		if b.Checked && b.Type != Todo {
			return invalid(i, RuleChecked, "checked on a %s item", b.Type)
		}

		maxIndent := 0
		if prev != nil {
			maxIndent = prev.Indent + 1
		}
		if b.Indent < 0 || b.Indent > maxIndent {
			return invalid(i, RuleIndent, "indent %d, at most %d allowed", b.Indent, maxIndent)
		}

		if prev != nil && prev.ID == b.ID {
			if prev.Indent != b.Indent || prev.Type != b.Type {
				return invalid(i, RuleGroup, "item %s mixes indent or type", b.ID)
			}
		} else if _, dup := seen[b.ID]; dup {
			return invalid(i, RuleContiguous, "item %s is not contiguous", b.ID)
		}

		seen[b.ID] = struct{}{}
		prev = b
	}

	return nil
}

func kindOf(c Content) string {
	if c == nil {
		return "empty block"
	}
	return c.Kind().String()
}
