package ep_list

import (
	"github.com/ether/etherpad-todolist/lib/commands"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/plugins/interfaces"
)

type EpListPlugin struct {
	enabled bool
}

func (p *EpListPlugin) Name() string {
	return "ep_list"
}

func (p *EpListPlugin) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *EpListPlugin) IsEnabled() bool {
	return p.enabled
}

func (p *EpListPlugin) Description() string {
	return "Adds bulleted and numbered list commands"
}

func (p *EpListPlugin) Init(store *interfaces.EpPluginStore) {
	store.Logger.Info("Initializing ep_list plugin")
}

func (p *EpListPlugin) SetupEditor(ed *editor.Editor) {
	commands.RegisterListCommands(ed)
}

var _ interfaces.EditorPlugin = (*EpListPlugin)(nil)
