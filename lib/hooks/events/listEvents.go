package events

import "github.com/ether/etherpad-todolist/lib/models/block"

// ListRenderedContext is passed to post-render hooks. Markup points at the
// rendered region and may be replaced by the hook.
type ListRenderedContext struct {
	Variant string
	Blocks  []block.ListBlock
	Markup  *string
}

// ListItemUpcastContext is passed to upcast hooks once per produced list
// item anchor. Hooks may adjust the block before it is appended.
type ListItemUpcastContext struct {
	Block      *block.ListBlock
	SourceTag  string
	SourceAttr map[string]string
}
