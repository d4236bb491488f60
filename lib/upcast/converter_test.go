package upcast

import (
	"testing"

	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/hooks/events"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/ether/etherpad-todolist/lib/uid"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p(text string) block.Paragraph { return block.Paragraph{Inline: text} }

func li(id string, indent int, t block.Type, checked bool, c block.Content) block.ListBlock {
	return block.ListBlock{ID: id, Indent: indent, Type: t, Checked: checked, Content: c}
}

func convert(t *testing.T, markup string) []block.ListBlock {
	t.Helper()
	out := NewConverter(uid.NewSequence(), nil, nil).Convert(markup)
	require.NoError(t, block.Validate(out))
	return out
}

func assertBlocks(t *testing.T, want, got []block.ListBlock) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_TodoItem(t *testing.T) {
	got := convert(t, `<ul><li><input type="checkbox">foo</li></ul>`)
	assertBlocks(t, []block.ListBlock{li("a00", 0, block.Todo, false, p("foo"))}, got)
}

func TestConvert_CheckedAttributeValues(t *testing.T) {
	for _, markup := range []string{
		`<ul><li><input type="checkbox" checked="checked">foo</li></ul>`,
		`<ul><li><input type="checkbox" checked>foo</li></ul>`,
		`<ul><li><input type="checkbox" checked="anything">foo</li></ul>`,
		`<ul><li><input type="CHECKBOX" checked="false">foo</li></ul>`,
	} {
		t.Run(markup, func(t *testing.T) {
			got := convert(t, markup)
			assertBlocks(t, []block.ListBlock{li("a00", 0, block.Todo, true, p("foo"))}, got)
		})
	}
}

func TestConvert_CheckboxAfterContentSplitsItem(t *testing.T) {
	got := convert(t, `<ul><li>foo<input type="checkbox">bar</li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("foo")),
		li("a01", 0, block.Todo, false, p("bar")),
	}, got)

	got = convert(t, `<ol><li>foo<input type="checkbox" checked>bar</li></ol>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Numbered, false, p("foo")),
		li("a01", 0, block.Todo, true, p("bar")),
	}, got)
}

func TestConvert_CheckboxAfterInlineElementSplitsItem(t *testing.T) {
	got := convert(t, `<ul><li><span>foo</span><input type="checkbox">bar</li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("<span>foo</span>")),
		li("a01", 0, block.Todo, false, p("bar")),
	}, got)
}

func TestConvert_NestedTodoLists(t *testing.T) {
	got := convert(t, `<ul><li><input type="checkbox">foo<ul><li><input type="checkbox" checked>bar</li></ul></li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, false, p("foo")),
		li("a01", 1, block.Todo, true, p("bar")),
	}, got)
}

func TestConvert_EmptyAnchorsForNestedListsWithoutContent(t *testing.T) {
	got := convert(t, `<ul><li><ul><li><input type="checkbox"><ul><li><input type="checkbox">foo</li></ul></li></ul></li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("")),
		li("a01", 1, block.Todo, false, p("")),
		li("a02", 2, block.Todo, false, p("foo")),
	}, got)
}

func TestConvert_ContentAfterNestedListStartsNewItem(t *testing.T) {
	got := convert(t, `<ul><li><input type="checkbox" checked>foo<ul><li>bar</li></ul>baz</li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, true, p("foo")),
		li("a01", 1, block.Bulleted, false, p("bar")),
		li("a02", 0, block.Todo, true, p("baz")),
	}, got)
}

func TestConvert_SiblingNestedListsShareTheParentItem(t *testing.T) {
	got := convert(t, `<ul><li>foo<ul class="todo-list"><li><label class="todo-list__label">`+
		`<input type="checkbox" disabled="disabled"><span class="todo-list__label__description">bar</span></label></li></ul>`+
		`<ol><li>baz</li></ol></li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("foo")),
		li("a01", 1, block.Todo, false, p("bar")),
		li("a02", 1, block.Numbered, false, p("baz")),
	}, got)
}

func TestConvert_SiblingNestedListsWithoutContent(t *testing.T) {
	got := convert(t, `<ul><li><ul><li>foo</li></ul><ol><li>bar</li></ol>baz</li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("")),
		li("a01", 1, block.Bulleted, false, p("foo")),
		li("a02", 1, block.Numbered, false, p("bar")),
		li("a03", 0, block.Bulleted, false, p("baz")),
	}, got)
}

func TestConvert_EmptyDescriptionKeepsAnchor(t *testing.T) {
	got := convert(t, `<ul class="todo-list"><li><label class="todo-list__label">`+
		`<input type="checkbox" disabled="disabled" checked="checked"><span class="todo-list__label__description"></span></label>`+
		`<p>bar</p></li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, true, p("")),
		li("a00", 0, block.Todo, true, p("bar")),
	}, got)

	editing := `<ul class="todo-list"><li><span class="todo-list__label">` +
		`<span contenteditable="false"><input tabindex="-1" type="checkbox" data-list-item-id="x"></span>` +
		`<span class="todo-list__label__description"></span></span><h2>bar</h2></li></ul>`
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, false, p("")),
		li("a00", 0, block.Todo, false, block.Heading{Level: 1, Inline: "bar"}),
	}, convert(t, editing))
}

func TestConvert_BulletedTodoTodoFixture(t *testing.T) {
	got := convert(t, `<ul>`+
		`<li>`+
		`<ul>`+
		`<li>`+
		`<input type="checkbox">foo</li>`+
		`<ul><li><input type="checkbox">foo</li></ul>`+
		`</ul>`+
		`</li>`+
		`</ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("")),
		li("a01", 1, block.Todo, false, p("foo")),
		li("a02", 2, block.Todo, false, p("foo")),
	}, got)
}

func TestConvert_PreformattedTextInsideItemKeepsWhitespace(t *testing.T) {
	got := convert(t, "<ul><li>foo<pre>a\n  b   c</pre></li></ul>")
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("foo<pre>a\n  b   c</pre>")),
	}, got)
}

func TestConvert_ListDirectlyInsideListNestsUnderPreviousItem(t *testing.T) {
	got := convert(t, `<ul><li>foo</li><ul><li>bar</li></ul></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("foo")),
		li("a01", 1, block.Bulleted, false, p("bar")),
	}, got)
}

func TestConvert_MultiBlockTodoItems(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []block.ListBlock
	}{
		{
			name:   "paragraph",
			markup: `<ul><li><input type="checkbox"><p>foo</p></li></ul>`,
			want:   []block.ListBlock{li("a00", 0, block.Todo, false, p("foo"))},
		},
		{
			name:   "two paragraphs",
			markup: `<ul><li><input type="checkbox"><p>foo</p><p>bar</p></li></ul>`,
			want: []block.ListBlock{
				li("a00", 0, block.Todo, false, p("foo")),
				li("a00", 0, block.Todo, false, p("bar")),
			},
		},
		{
			name:   "block quote",
			markup: `<ul><li><input type="checkbox"><blockquote><p>foo</p></blockquote></li></ul>`,
			want: []block.ListBlock{
				li("a00", 0, block.Todo, false, block.BlockQuote{Blocks: []block.ListBlock{{Content: p("foo")}}}),
			},
		},
		{
			name:   "heading",
			markup: `<ul><li><input type="checkbox" checked><h2>foo</h2></li></ul>`,
			want:   []block.ListBlock{li("a00", 0, block.Todo, true, block.Heading{Level: 1, Inline: "foo"})},
		},
		{
			name:   "table",
			markup: `<ul><li><input type="checkbox"><table><tr><td>foo</td><td>bar</td></tr></table></li></ul>`,
			want: []block.ListBlock{
				li("a00", 0, block.Todo, false, block.Table{Rows: [][]string{{"foo", "bar"}}}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertBlocks(t, tt.want, convert(t, tt.markup))
		})
	}
}

func TestConvert_RendererMarkupIsRecognised(t *testing.T) {
	data := `<ul class="todo-list"><li><label class="todo-list__label">` +
		`<input type="checkbox" disabled="disabled" checked="checked">` +
		`<span class="todo-list__label__description">foo</span></label></li></ul>`
	assertBlocks(t, []block.ListBlock{li("a00", 0, block.Todo, true, p("foo"))}, convert(t, data))

	editing := `<ul class="todo-list"><li><span class="todo-list__label">` +
		`<span contenteditable="false"><input tabindex="-1" type="checkbox"></span>` +
		`<span class="todo-list__label__description">foo</span></span></li></ul>`
	assertBlocks(t, []block.ListBlock{li("a00", 0, block.Todo, false, p("foo"))}, convert(t, editing))

	withoutDescription := `<ul class="todo-list"><li>` +
		`<label class="todo-list__label todo-list__label_without-description"><input type="checkbox" disabled="disabled"></label>` +
		`<p>foo</p><p>bar</p></li></ul>`
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, false, p("foo")),
		li("a00", 0, block.Todo, false, p("bar")),
	}, convert(t, withoutDescription))
}

func TestConvert_MarkdownTaskListOutput(t *testing.T) {
	tight := "<ul>\n<li><input checked=\"\" disabled=\"\" type=\"checkbox\" /> foo</li>\n<li><input disabled=\"\" type=\"checkbox\" /> bar</li>\n</ul>\n"
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, true, p("foo")),
		li("a01", 0, block.Todo, false, p("bar")),
	}, convert(t, tight))

	loose := "<ul>\n<li>\n<p><input checked=\"\" disabled=\"\" type=\"checkbox\" /> foo</p>\n</li>\n</ul>\n"
	assertBlocks(t, []block.ListBlock{li("a00", 0, block.Todo, true, p("foo"))}, convert(t, loose))
}

func TestConvert_WhitespaceBetweenTagsIsIgnored(t *testing.T) {
	markup := "<ul>\n  <li>\n    <input type=\"checkbox\">\n    foo\n  </li>\n</ul>"
	assertBlocks(t, []block.ListBlock{li("a00", 0, block.Todo, false, p("foo"))}, convert(t, markup))
}

func TestConvert_CheckboxesOutsideListsAreDropped(t *testing.T) {
	got := convert(t, `<p><input type="checkbox">foo</p><ul><li><input type="text">bar</li></ul>`)
	assertBlocks(t, []block.ListBlock{
		{Content: p("foo")},
		li("a00", 0, block.Bulleted, false, p("bar")),
	}, got)
}

func TestConvert_CheckboxWithoutContentIsEmptyTodo(t *testing.T) {
	got := convert(t, `<ul><li>foo<input type="checkbox" checked></li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Bulleted, false, p("foo")),
		li("a01", 0, block.Todo, true, p("")),
	}, got)
}

func TestConvert_UnmodelledBlocksOutsideLists(t *testing.T) {
	got := convert(t, `<pre>x</pre><h4>Title</h4>`)
	require.Len(t, got, 2)
	other, ok := got[0].Content.(block.Other)
	require.True(t, ok)
	assert.Equal(t, "pre", other.Tag)
	assert.Equal(t, "<pre>x</pre>", other.HTML)
	assert.Equal(t, block.Heading{Level: 3, Inline: "Title"}, got[1].Content)
}

func TestConvert_ListItemUpcastHook(t *testing.T) {
	h := hooks.NewHook()
	var tags []string
	h.EnqueueListItemUpcastHook(func(ctx *events.ListItemUpcastContext) {
		tags = append(tags, ctx.SourceTag)
		if ctx.SourceAttr["data-done"] == "yes" {
			ctx.Block.Type = block.Todo
			ctx.Block.Checked = true
		}
	})

	got := NewConverter(uid.NewSequence(), h, nil).Convert(`<ul><li data-done="yes">foo</li><li>bar</li></ul>`)
	assertBlocks(t, []block.ListBlock{
		li("a00", 0, block.Todo, true, p("foo")),
		li("a01", 0, block.Bulleted, false, p("bar")),
	}, got)
	assert.Equal(t, []string{"li", "li"}, tags)
}

func TestConvert_RandomIds(t *testing.T) {
	got := NewConverter(nil, nil, nil).Convert(`<ul><li>foo</li><li>bar</li></ul>`)
	require.Len(t, got, 2)
	assert.Regexp(t, `^e[0-9a-f]{32}$`, got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestConvert_EditingBogusParagraphIsUnwrapped(t *testing.T) {
	got := convert(t, `<ol><li><span class="ck-list-bogus-paragraph">foo</span></li></ol>`)
	assertBlocks(t, []block.ListBlock{li("a00", 0, block.Numbered, false, p("foo"))}, got)
}
