package interfaces

import "github.com/ether/etherpad-todolist/lib/editor"

type EpPlugin interface {
	Name() string
	Description() string
	Init(store *EpPluginStore)
	SetEnabled(enabled bool)
	IsEnabled() bool
}

// EditorPlugin is implemented by plugins that contribute to every editor
// instance, usually by registering commands.
type EditorPlugin interface {
	EpPlugin
	SetupEditor(ed *editor.Editor)
}

// DependentPlugin names the plugins that must be enabled for it to load.
type DependentPlugin interface {
	Requires() []string
}
