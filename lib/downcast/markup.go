package downcast

import (
	"html"
	"strconv"
	"strings"

	"github.com/ether/etherpad-todolist/lib/models/block"
)

const (
	todoListClass        = "todo-list"
	todoLabelClass       = "todo-list__label"
	withoutDescription   = "todo-list__label_without-description"
	descriptionClass     = "todo-list__label__description"
	bogusParagraphClass  = "ck-list-bogus-paragraph"
	tableBogusParagraph  = "ck-table-bogus-paragraph"
	tableWidgetClass     = "ck-widget ck-widget_with-selection-handle table"
	nestedEditableClass  = "ck-editor__editable ck-editor__nested-editable"
	selectionHandleClass = "ck ck-widget__selection-handle"
)

func containerOpen(t block.Type) string {
	switch t {
	case block.Numbered:
		return "<ol>"
	case block.Todo:
		return `<ul class="` + todoListClass + `">`
	}
	return "<ul>"
}

func containerClose(t block.Type) string {
	if t == block.Numbered {
		return "</ol>"
	}
	return "</ul>"
}

// checkbox renders the todo marker of an item anchor.
func checkbox(anchor block.ListBlock, v Variant) string {
	var sb strings.Builder
	sb.WriteString(`<input`)
	if v == Editing {
		sb.WriteString(` tabindex="-1"`)
	}
	sb.WriteString(` type="checkbox"`)
	if v == Data {
		sb.WriteString(` disabled="disabled"`)
	}
	if anchor.Checked {
		sb.WriteString(` checked="checked"`)
	}
	if v == Editing {
		sb.WriteString(` data-list-item-id="`)
		sb.WriteString(html.EscapeString(anchor.ID))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	return sb.String()
}

// todoLabel wraps the checkbox of a todo anchor. Paragraph anchors carry their
// text as the label description; other anchors follow the label as siblings.
func todoLabel(anchor block.ListBlock, v Variant) string {
	class := todoLabelClass
	description := ""
	if p, ok := anchor.Content.(block.Paragraph); ok {
		description = `<span class="` + descriptionClass + `">` + p.Inline + `</span>`
	} else {
		class += " " + withoutDescription
	}

	if v == Editing {
		return `<span class="` + class + `"><span contenteditable="false">` + checkbox(anchor, v) + `</span>` + description + `</span>`
	}
	return `<label class="` + class + `">` + checkbox(anchor, v) + description + `</label>`
}

func (r *Renderer) content(c block.Content, v Variant) string {
	switch c := c.(type) {
	case block.Paragraph:
		return "<p>" + c.Inline + "</p>"
	case block.Heading:
		tag := "h" + strconv.Itoa(clampHeading(c.Level)+1)
		return "<" + tag + ">" + c.Inline + "</" + tag + ">"
	case block.BlockQuote:
		return "<blockquote>" + r.sequence(c.Blocks, v) + "</blockquote>"
	case block.Table:
		return table(c, v)
	case block.Other:
		return c.HTML
	}
	return ""
}

func clampHeading(level int) int {
	if level < 1 {
		return 1
	}
	if level > block.MaxHeadingLevel {
		return block.MaxHeadingLevel
	}
	return level
}

func table(t block.Table, v Variant) string {
	var pieces []string
	if v == Editing {
		pieces = append(pieces, `<figure class="`+tableWidgetClass+`" contenteditable="false">`,
			`<div class="`+selectionHandleClass+`"></div>`)
	} else {
		pieces = append(pieces, `<figure class="table">`)
	}
	pieces = append(pieces, "<table><tbody>")
	for _, row := range t.Rows {
		pieces = append(pieces, "<tr>")
		for _, cell := range row {
			if v == Editing {
				pieces = append(pieces, `<td class="`+nestedEditableClass+`" contenteditable="true" role="textbox"><span class="`+tableBogusParagraph+`">`, cell, "</span></td>")
			} else {
				pieces = append(pieces, "<td>", cell, "</td>")
			}
		}
		pieces = append(pieces, "</tr>")
	}
	pieces = append(pieces, "</tbody></table></figure>")
	return strings.Join(pieces, "")
}
