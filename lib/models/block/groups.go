package block

// Span is a half-open index range [Start, End) over a block sequence.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Contains(i int) bool { return i >= s.Start && i < s.End }

// Groups returns the id-groups of the sequence in order. Non-list blocks are
// not part of any group.
func Groups(blocks []ListBlock) []Span {
	var groups []Span
	for i := 0; i < len(blocks); {
		if !blocks[i].IsListItem() {
			i++
			continue
		}
		j := i + 1
		for j < len(blocks) && blocks[j].IsListItem() && blocks[j].ID == blocks[i].ID {
			j++
		}
		groups = append(groups, Span{Start: i, End: j})
		i = j
	}
	return groups
}

// GroupOf returns the id-group containing index i.
func GroupOf(blocks []ListBlock, i int) (Span, bool) {
	if i < 0 || i >= len(blocks) || !blocks[i].IsListItem() {
		return Span{}, false
	}
	id := blocks[i].ID
	start, end := i, i+1
	for start > 0 && blocks[start-1].IsListItem() && blocks[start-1].ID == id {
		start--
	}
	for end < len(blocks) && blocks[end].IsListItem() && blocks[end].ID == id {
		end++
	}
	return Span{Start: start, End: end}, true
}

// FindGroup locates the id-group of the item with the given id.
func FindGroup(blocks []ListBlock, id string) (Span, bool) {
	if id == "" {
		return Span{}, false
	}
	for i := range blocks {
		if blocks[i].IsListItem() && blocks[i].ID == id {
			return GroupOf(blocks, i)
		}
	}
	return Span{}, false
}

// Region is a top-level render unit: a maximal run of list blocks, or a
// single block outside any list.
type Region struct {
	Span
	List bool
}

func Regions(blocks []ListBlock) []Region {
	var regions []Region
	for i := 0; i < len(blocks); {
		if !blocks[i].IsListItem() {
			regions = append(regions, Region{Span: Span{Start: i, End: i + 1}})
			i++
			continue
		}
		j := i + 1
		for j < len(blocks) && blocks[j].IsListItem() {
			j++
		}
		regions = append(regions, Region{Span: Span{Start: i, End: j}, List: true})
		i = j
	}
	return regions
}
