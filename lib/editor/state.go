package editor

import "github.com/ether/etherpad-todolist/lib/models/block"

// Selection is an inclusive range of block indices.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Options are the arguments a command is executed with.
type Options struct {
	// ForceValue turns the command on or off instead of toggling it.
	ForceValue *bool
	// ItemID targets one list item instead of the selection.
	ItemID string
}

// State is a read-only view of the document a command is evaluated against.
type State struct {
	Blocks    []block.ListBlock
	Selection Selection
}

// SelectedIndices returns the indices of the selected blocks.
func (s *State) SelectedIndices() []int {
	if len(s.Blocks) == 0 {
		return nil
	}
	start, end := clampSelection(s.Selection, len(s.Blocks))
	indices := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		indices = append(indices, i)
	}
	return indices
}

// SelectedItems returns the selection widened to whole id-groups. Non-list
// blocks stay single entries.
func (s *State) SelectedItems() []block.Span {
	var spans []block.Span
	for _, i := range s.SelectedIndices() {
		if len(spans) > 0 && spans[len(spans)-1].Contains(i) {
			continue
		}
		span, ok := block.GroupOf(s.Blocks, i)
		if !ok {
			span = block.Span{Start: i, End: i + 1}
		}
		spans = append(spans, span)
	}
	return spans
}

func clampSelection(sel Selection, n int) (int, int) {
	start, end := sel.Start, sel.End
	if end < start {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}
	if start > end {
		start = end
	}
	return start, end
}
