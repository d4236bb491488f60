package settings

import (
	"strings"

	"github.com/spf13/viper"
)

type ConfigKey struct {
	Key         string
	Default     any
	Description string
}

const envPrefix = "TODOLIST"

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}

var Registry = []ConfigKey{
	// ---------------------------------------------------------------------
	// Core
	// ---------------------------------------------------------------------
	{Key: IP, Default: "0.0.0.0", Description: "Bind address"},
	{Key: Port, Default: "9001", Description: "HTTP server port"},
	{Key: Loglevel, Default: "INFO", Description: "Log level"},
	{Key: DevMode, Default: false, Description: "Development logging"},

	// ---------------------------------------------------------------------
	// Database
	// ---------------------------------------------------------------------
	{Key: DBType, Default: string(SQLITE), Description: "Database type"},
	{Key: DBSettingsHost, Default: "localhost", Description: "Database host"},
	{Key: DBSettingsPort, Default: 0, Description: "Database port"},
	{Key: DBSettingsUser, Default: "", Description: "Database user"},
	{Key: DBSettingsPassword, Default: "", Description: "Database password"},
	{Key: DBSettingsDatabase, Default: "todolist", Description: "Database name"},
	{
		Key:         DBSettingsFilename,
		Default:     "var/todolist.db",
		Description: "SQLite database filename",
	},

	// ---------------------------------------------------------------------
	// Editor
	// ---------------------------------------------------------------------
	{
		Key:         IDGenerator,
		Default:     "random",
		Description: "List item id generator (random or sequence)",
	},
	{
		Key:         SanitizeImports,
		Default:     true,
		Description: "Sanitize imported HTML",
	},
	{
		Key:         RenderCacheTTL,
		Default:     "10m",
		Description: "Lifetime of memoized list regions",
	},
	{
		Key:         ObserverQueueSize,
		Default:     64,
		Description: "Pending checkbox changes per document",
	},
	{
		Key:         MaxMessageSize,
		Default:     512 * 1024,
		Description: "Max websocket message size",
	},
	{
		Key:         RateLimitDuration,
		Default:     1,
		Description: "Websocket rate limit window in seconds",
	},
	{
		Key:         RateLimitPoints,
		Default:     20,
		Description: "Websocket messages allowed per window and client",
	},
	{
		Key:         ImportMaxFileSize,
		Default:     10 * 1024 * 1024,
		Description: "Max import size",
	},

	// ---------------------------------------------------------------------
	// Plugins
	// ---------------------------------------------------------------------
	{Key: EpListEnabled, Default: true, Description: "Enable ep_list plugin"},
	{
		Key:         EpTodolistEnabled,
		Default:     true,
		Description: "Enable ep_todolist plugin",
	},
	{
		Key:         EpListStatsEnabled,
		Default:     false,
		Description: "Enable ep_list_stats plugin",
	},
}

func ApplyRegistryDefaults(v *viper.Viper) {
	for _, c := range Registry {
		v.SetDefault(c.Key, c.Default)
	}
}
