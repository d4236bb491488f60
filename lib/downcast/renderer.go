package downcast

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/hooks/events"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Renderer turns validated block sequences into markup. Top-level regions are
// rendered independently and memoized by content hash, so a change batch only
// regenerates the regions it touched.
type Renderer struct {
	hooks  *hooks.Hook
	cache  *cache.Cache
	logger *zap.SugaredLogger
}

// NewRenderer creates a renderer. A ttl of zero disables region memoization.
func NewRenderer(hook *hooks.Hook, ttl time.Duration, logger *zap.SugaredLogger) *Renderer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	r := &Renderer{
		hooks:  hook,
		logger: logger,
	}
	if ttl > 0 {
		r.cache = cache.New(ttl, 2*ttl)
	}
	return r
}

// Render validates blocks and renders them. Invalid sequences are rejected
// with the *block.InvariantError reported by block.Validate.
func (r *Renderer) Render(blocks []block.ListBlock, v Variant) (string, error) {
	if err := block.Validate(blocks); err != nil {
		return "", err
	}

	var pieces []string
	for _, region := range block.Regions(blocks) {
		blocksOfRegion := blocks[region.Start:region.End]
		markup := r.region(blocksOfRegion, region.List, v)
		if region.List {
			r.hooks.ExecuteListRenderedHooks(&events.ListRenderedContext{
				Variant: string(v),
				Blocks:  blocksOfRegion,
				Markup:  &markup,
			})
		}
		pieces = append(pieces, markup)
	}
	return strings.Join(pieces, ""), nil
}

// Purge drops all memoized regions.
func (r *Renderer) Purge() {
	if r.cache != nil {
		r.cache.Flush()
	}
}

func (r *Renderer) region(blocks []block.ListBlock, list bool, v Variant) string {
	key, ok := regionKey(blocks, v)
	if ok && r.cache != nil {
		if cached, found := r.cache.Get(key); found {
			return cached.(string)
		}
	}

	var markup string
	if list {
		markup = r.list(blocks, v)
	} else {
		markup = r.content(blocks[0].Content, v)
	}

	if ok && r.cache != nil {
		r.cache.SetDefault(key, markup)
	}
	return markup
}

func regionKey(blocks []block.ListBlock, v Variant) (string, bool) {
	payload, err := json.Marshal(blocks)
	if err != nil {
		return "", false
	}
	d := xxhash.New()
	_, _ = d.WriteString(string(v))
	_, _ = d.Write(payload)
	return string(v) + ":" + strconv.FormatUint(d.Sum64(), 16), true
}

// sequence renders a nested sequence, such as the content of a block quote,
// without memoization or hooks.
func (r *Renderer) sequence(blocks []block.ListBlock, v Variant) string {
	var pieces []string
	for _, region := range block.Regions(blocks) {
		if region.List {
			pieces = append(pieces, r.list(blocks[region.Start:region.End], v))
		} else {
			pieces = append(pieces, r.content(blocks[region.Start].Content, v))
		}
	}
	return strings.Join(pieces, "")
}

type openList struct {
	indent   int
	listType block.Type
}

// list renders one maximal run of list blocks with a stack of open
// containers keyed by indent and type.
func (r *Renderer) list(blocks []block.ListBlock, v Variant) string {
	var pieces []string
	var openLists []openList

	closeTop := func() {
		top := openLists[len(openLists)-1]
		pieces = append(pieces, "</li>", containerClose(top.listType))
		openLists = openLists[:len(openLists)-1]
	}

	for start := 0; start < len(blocks); {
		end := start + 1
		for end < len(blocks) && blocks[end].ID == blocks[start].ID {
			end++
		}
		anchor := blocks[start]

		for len(openLists) > 0 {
			top := openLists[len(openLists)-1]
			if top.indent > anchor.Indent || (top.indent == anchor.Indent && top.listType != anchor.Type) {
				closeTop()
				continue
			}
			break
		}

		if len(openLists) > 0 && openLists[len(openLists)-1].indent == anchor.Indent {
			pieces = append(pieces, "</li>")
		} else {
			openLists = append(openLists, openList{indent: anchor.Indent, listType: anchor.Type})
			pieces = append(pieces, containerOpen(anchor.Type))
		}

		pieces = append(pieces, "<li>", r.item(blocks[start:end], v))
		start = end
	}

	for len(openLists) > 0 {
		closeTop()
	}
	return strings.Join(pieces, "")
}

// item renders the blocks of one id-group inside its li.
func (r *Renderer) item(group []block.ListBlock, v Variant) string {
	anchor := group[0]
	var pieces []string

	rest := group
	if anchor.Type == block.Todo {
		pieces = append(pieces, todoLabel(anchor, v))
		if block.IsTextBearing(anchor.Content) {
			rest = group[1:]
		}
	} else if p, ok := anchor.Content.(block.Paragraph); ok && len(group) == 1 {
		if v == Editing {
			return `<span class="` + bogusParagraphClass + `">` + p.Inline + `</span>`
		}
		return p.Inline
	}

	for _, b := range rest {
		pieces = append(pieces, r.content(b.Content, v))
	}
	return strings.Join(pieces, "")
}
