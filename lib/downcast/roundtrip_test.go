package downcast

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/ether/etherpad-todolist/lib/uid"
	"github.com/ether/etherpad-todolist/lib/upcast"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var listTypes = []block.Type{block.Bulleted, block.Numbered, block.Todo}

// randomSequence builds a valid block sequence. Non-list paragraphs, nested
// items, sibling nested lists of different types and multi-block items are
// mixed in at random.
func randomSequence(f *gofakeit.Faker, ids uid.Source) []block.ListBlock {
	var blocks []block.ListBlock
	n := f.IntRange(1, 20)
	for i := 0; i < n; i++ {
		var prev *block.ListBlock
		if len(blocks) > 0 {
			prev = &blocks[len(blocks)-1]
		}

		switch roll := f.IntRange(0, 9); {
		case roll == 0:
			blocks = append(blocks, block.ListBlock{Content: block.Paragraph{Inline: f.Word()}})
		case roll == 1 && prev != nil && prev.IsListItem():
			cont := *prev
			cont.Content = randomContent(f)
			blocks = append(blocks, cont)
		case roll == 2 && prev != nil && prev.IsListItem():
			indent := prev.Indent + 1
			first := f.IntRange(0, len(listTypes)-1)
			second := (first + f.IntRange(1, len(listTypes)-1)) % len(listTypes)
			for _, t := range []block.Type{listTypes[first], listTypes[second]} {
				b := block.ListBlock{ID: ids.Next(), Indent: indent, Type: t, Content: randomContent(f)}
				if t == block.Todo {
					b.Checked = f.Bool()
				}
				blocks = append(blocks, b)
			}
		default:
			maxIndent := 0
			if prev != nil && prev.IsListItem() {
				maxIndent = prev.Indent + 1
			}
			b := block.ListBlock{
				ID:      ids.Next(),
				Indent:  f.IntRange(0, maxIndent),
				Type:    listTypes[f.IntRange(0, len(listTypes)-1)],
				Content: randomContent(f),
			}
			if b.Type == block.Todo {
				b.Checked = f.Bool()
			}
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func randomContent(f *gofakeit.Faker) block.Content {
	switch f.IntRange(0, 7) {
	case 0:
		return block.Heading{Level: f.IntRange(1, block.MaxHeadingLevel), Inline: f.Word()}
	case 1:
		return block.Table{Rows: [][]string{{f.Word(), f.Word()}}}
	case 2:
		return block.BlockQuote{Blocks: []block.ListBlock{{Content: block.Paragraph{Inline: f.Word()}}}}
	case 3:
		return block.Paragraph{}
	}
	return block.Paragraph{Inline: f.Word()}
}

// canonical renumbers ids by first appearance so sequences produced by
// different id sources compare equal.
func canonical(blocks []block.ListBlock) []block.ListBlock {
	seen := map[string]string{}
	out := block.CloneAll(blocks)
	for i := range out {
		if out[i].ID == "" {
			continue
		}
		id, ok := seen[out[i].ID]
		if !ok {
			id = fmt.Sprintf("g%d", len(seen))
			seen[out[i].ID] = id
		}
		out[i].ID = id
	}
	return out
}

func TestRoundTrip_DataMarkupPreservesStructure(t *testing.T) {
	r := NewRenderer(nil, 0, nil)

	for seed := uint64(1); seed <= 200; seed++ {
		f := gofakeit.New(seed)
		blocks := randomSequence(f, uid.NewRandom())
		require.NoError(t, block.Validate(blocks), "seed %d", seed)

		markup, err := r.Render(blocks, Data)
		require.NoError(t, err, "seed %d", seed)

		back := upcast.NewConverter(uid.NewSequence(), nil, nil).Convert(markup)
		if diff := cmp.Diff(canonical(blocks), canonical(back)); diff != "" {
			t.Fatalf("seed %d: round trip mismatch (-want +got):\n%s\nmarkup: %s", seed, diff, markup)
		}
	}
}

func TestRoundTrip_SiblingNestedListsAndEmptyAnchors(t *testing.T) {
	r := NewRenderer(nil, 0, nil)
	tests := []struct {
		name   string
		blocks []block.ListBlock
	}{
		{
			name: "type change below a bulleted item",
			blocks: []block.ListBlock{
				{ID: "x1", Indent: 0, Type: block.Bulleted, Content: block.Paragraph{Inline: "foo"}},
				{ID: "x2", Indent: 1, Type: block.Todo, Content: block.Paragraph{Inline: "bar"}},
				{ID: "x3", Indent: 1, Type: block.Numbered, Content: block.Paragraph{Inline: "baz"}},
			},
		},
		{
			name: "empty todo anchor with continuation",
			blocks: []block.ListBlock{
				{ID: "x1", Type: block.Todo, Content: block.Paragraph{}},
				{ID: "x1", Type: block.Todo, Content: block.Paragraph{Inline: "bar"}},
			},
		},
		{
			name: "block quote anchor",
			blocks: []block.ListBlock{
				{ID: "x1", Type: block.Todo, Checked: true, Content: block.BlockQuote{Blocks: []block.ListBlock{{Content: block.Paragraph{Inline: "foo"}}}}},
				{ID: "x2", Indent: 1, Type: block.Bulleted, Content: block.Paragraph{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, block.Validate(tt.blocks))
			markup, err := r.Render(tt.blocks, Data)
			require.NoError(t, err)

			back := upcast.NewConverter(uid.NewSequence(), nil, nil).Convert(markup)
			if diff := cmp.Diff(canonical(tt.blocks), canonical(back)); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s\nmarkup: %s", diff, markup)
			}
		})
	}
}
