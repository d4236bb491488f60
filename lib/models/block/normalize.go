package block

import "github.com/ether/etherpad-todolist/lib/uid"

// Normalize returns a copy of blocks that satisfies Validate. It is the post
// fixer run after every change batch:
//   - blocks that cannot be list items lose their list attributes,
//   - indents are clamped to one level below the previous list block,
//   - continuation blocks follow their anchor's indent, type and checked state,
//   - an id that reappears after its group ended is replaced by a fresh one.
func Normalize(blocks []ListBlock, ids uid.Source) []ListBlock {
	out := CloneAll(blocks)
	seen := make(map[string]struct{})

	var prev *ListBlock
	prevOrigID := ""

	for i := range out {
		b := &out[i]

		if q, ok := b.Content.(BlockQuote); ok {
			b.Content = BlockQuote{Blocks: Normalize(q.Blocks, ids)}
		}

		if !b.IsListItem() || !AllowsListAttributes(b.Content) {
			*b = b.WithoutListAttributes()
			prev = nil
			prevOrigID = ""
			continue
		}

		origID := b.ID

		if prev != nil && origID != "" && origID == prevOrigID {
			b.ID = prev.ID
			b.Indent = prev.Indent
			b.Type = prev.Type
			b.Checked = prev.Checked
		} else {
			if _, dup := seen[origID]; dup || origID == "" {
				b.ID = ids.Next()
			}

			maxIndent := 0
			if prev != nil {
				maxIndent = prev.Indent + 1
			}
			if b.Indent > maxIndent {
				b.Indent = maxIndent
			}
			if b.Indent < 0 {
				b.Indent = 0
			}
			if b.Type != Todo {
				b.Checked = false
			}
		}

		seen[b.ID] = struct{}{}
		prev = b
		prevOrigID = origID
	}

	return out
}
