package ep_list_stats

import (
	"github.com/ether/etherpad-todolist/lib/hooks/events"
	"github.com/ether/etherpad-todolist/lib/plugins/interfaces"
)

const editingVariant = "editing"

type EpListStatsPlugin struct {
	enabled bool
	hookID  string
}

func (p *EpListStatsPlugin) Name() string {
	return "ep_list_stats"
}

func (p *EpListStatsPlugin) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *EpListStatsPlugin) IsEnabled() bool {
	return p.enabled
}

func (p *EpListStatsPlugin) Description() string {
	return "Shows done/total counters on todo lists in the editing view"
}

func (p *EpListStatsPlugin) Init(store *interfaces.EpPluginStore) {
	store.Logger.Info("Initializing ep_list_stats plugin")

	p.hookID = store.HookSystem.EnqueueListRenderedHook(func(ctx *events.ListRenderedContext) {
		if !p.enabled || ctx.Variant != editingVariant {
			return
		}
		*ctx.Markup = Stamp(*ctx.Markup, Count(ctx.Blocks))
	})
}

var _ interfaces.EpPlugin = (*EpListStatsPlugin)(nil)
