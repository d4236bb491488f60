package ep_todolist

import (
	"github.com/ether/etherpad-todolist/lib/commands"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/plugins/interfaces"
)

type EpTodolistPlugin struct {
	enabled bool
}

func (p *EpTodolistPlugin) Name() string {
	return "ep_todolist"
}

func (p *EpTodolistPlugin) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *EpTodolistPlugin) IsEnabled() bool {
	return p.enabled
}

func (p *EpTodolistPlugin) Description() string {
	return "Adds todo lists with checkable items"
}

func (p *EpTodolistPlugin) Requires() []string {
	return []string{"ep_list"}
}

func (p *EpTodolistPlugin) Init(store *interfaces.EpPluginStore) {
	store.Logger.Info("Initializing ep_todolist plugin")
}

// SetupEditor registers todoList and checkTodoList. The checkbox observer
// drives checkTodoList, so without this plugin every toggle is rejected.
func (p *EpTodolistPlugin) SetupEditor(ed *editor.Editor) {
	commands.RegisterTodoCommands(ed)
}

var (
	_ interfaces.EditorPlugin    = (*EpTodolistPlugin)(nil)
	_ interfaces.DependentPlugin = (*EpTodolistPlugin)(nil)
)
