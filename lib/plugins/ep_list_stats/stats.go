package ep_list_stats

import (
	"strconv"
	"strings"

	"github.com/ether/etherpad-todolist/lib/models/block"
)

const todoContainer = `<ul class="todo-list">`

// Counter holds the number of checked and total items directly inside one
// todo container.
type Counter struct {
	Done  int
	Total int
}

// Count returns one counter per todo container, in the order the containers
// open in rendered markup.
func Count(blocks []block.ListBlock) []*Counter {
	var out []*Counter
	countSequence(blocks, &out)
	return out
}

func countSequence(blocks []block.ListBlock, out *[]*Counter) {
	for _, region := range block.Regions(blocks) {
		if region.List {
			countList(blocks[region.Start:region.End], out)
			continue
		}
		if q, ok := blocks[region.Start].Content.(block.BlockQuote); ok {
			countSequence(q.Blocks, out)
		}
	}
}

type openContainer struct {
	indent   int
	listType block.Type
	counter  *Counter
}

// countList mirrors the container stack of the renderer.
func countList(blocks []block.ListBlock, out *[]*Counter) {
	var stack []openContainer

	for _, span := range block.Groups(blocks) {
		anchor := blocks[span.Start]

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.indent > anchor.Indent || (top.indent == anchor.Indent && top.listType != anchor.Type) {
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}

		if len(stack) == 0 || stack[len(stack)-1].indent != anchor.Indent {
			opened := openContainer{indent: anchor.Indent, listType: anchor.Type}
			if anchor.Type == block.Todo {
				opened.counter = &Counter{}
				*out = append(*out, opened.counter)
			}
			stack = append(stack, opened)
		}

		if c := stack[len(stack)-1].counter; c != nil {
			c.Total++
			if anchor.Checked {
				c.Done++
			}
		}

		for _, b := range blocks[span.Start:span.End] {
			if q, ok := b.Content.(block.BlockQuote); ok {
				countSequence(q.Blocks, out)
			}
		}
	}
}

// Stamp adds data-todo-done and data-todo-total to the todo containers of
// markup, pairing the k-th container with the k-th counter.
func Stamp(markup string, counters []*Counter) string {
	var sb strings.Builder
	rest := markup
	for _, c := range counters {
		i := strings.Index(rest, todoContainer)
		if i < 0 {
			break
		}
		sb.WriteString(rest[:i])
		sb.WriteString(`<ul class="todo-list" data-todo-done="`)
		sb.WriteString(strconv.Itoa(c.Done))
		sb.WriteString(`" data-todo-total="`)
		sb.WriteString(strconv.Itoa(c.Total))
		sb.WriteString(`">`)
		rest = rest[i+len(todoContainer):]
	}
	sb.WriteString(rest)
	return sb.String()
}
