package plugins

import (
	"slices"

	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/plugins/ep_list"
	"github.com/ether/etherpad-todolist/lib/plugins/ep_list_stats"
	"github.com/ether/etherpad-todolist/lib/plugins/ep_todolist"
	"github.com/ether/etherpad-todolist/lib/plugins/interfaces"
)

// RegisteredPlugins returns fresh instances of the built-in plugins in load
// order.
func RegisteredPlugins() []interfaces.EpPlugin {
	return []interfaces.EpPlugin{
		&ep_list.EpListPlugin{},
		&ep_todolist.EpTodolistPlugin{},
		&ep_list_stats.EpListStatsPlugin{},
	}
}

// InitPlugins initializes every plugin enabled in the settings and returns
// them. Plugins whose requirements are not loaded are skipped.
func InitPlugins(store *interfaces.EpPluginStore) []interfaces.EpPlugin {
	enabledPlugins := make([]string, 0)
	for _, pluginSettings := range store.RetrievedSettings.GetAllPlugins() {
		if pluginSettings.Enabled {
			enabledPlugins = append(enabledPlugins, pluginSettings.Name)
		}
	}

	loaded := make([]interfaces.EpPlugin, 0)
	loadedNames := make([]string, 0)
	for _, plugin := range RegisteredPlugins() {
		if !slices.Contains(enabledPlugins, plugin.Name()) {
			continue
		}
		if dependent, ok := plugin.(interfaces.DependentPlugin); ok {
			missing := ""
			for _, required := range dependent.Requires() {
				if !slices.Contains(loadedNames, required) {
					missing = required
					break
				}
			}
			if missing != "" {
				store.Logger.Warnw("Skipping plugin with missing requirement", "plugin", plugin.Name(), "requires", missing)
				continue
			}
		}

		store.Logger.Infof("Loading plugin: %s", plugin.Name())
		plugin.Init(store)
		plugin.SetEnabled(true)
		loaded = append(loaded, plugin)
		loadedNames = append(loadedNames, plugin.Name())
	}
	return loaded
}

// SetupEditor applies the editor contributions of the loaded plugins.
func SetupEditor(ed *editor.Editor, loaded []interfaces.EpPlugin) {
	for _, plugin := range loaded {
		if editorPlugin, ok := plugin.(interfaces.EditorPlugin); ok && plugin.IsEnabled() {
			editorPlugin.SetupEditor(ed)
		}
	}
}
