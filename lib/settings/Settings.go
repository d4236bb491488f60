package settings

import (
	"time"
)

type DBSettings struct {
	Filename string `json:"filename"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type EditorSettings struct {
	IDGenerator       string        `json:"idGenerator"`
	SanitizeImports   bool          `json:"sanitizeImports"`
	RenderCacheTTL    time.Duration `json:"renderCacheTTL"`
	ObserverQueueSize int           `json:"observerQueueSize"`
}

type RateLimitSettings struct {
	Duration int `json:"duration"`
	Points   int `json:"points"`
}

type PluginSettings struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type Settings struct {
	IP                string            `json:"ip"`
	Port              string            `json:"port"`
	LogLevel          string            `json:"logLevel"`
	DevMode           bool              `json:"devMode"`
	DBType            IDBType           `json:"dbType"`
	DBSettings        *DBSettings       `json:"dbSettings"`
	Editor            EditorSettings    `json:"editor"`
	MaxMessageSize    int64             `json:"maxMessageSize"`
	RateLimit         RateLimitSettings `json:"rateLimit"`
	ImportMaxFileSize int64             `json:"importMaxFileSize"`
	Plugins           []PluginSettings  `json:"plugins"`
}

// GetAllPlugins returns the plugin toggles in registry order.
func (s *Settings) GetAllPlugins() []PluginSettings {
	return s.Plugins
}

func (s *Settings) IsPluginEnabled(name string) bool {
	for _, p := range s.Plugins {
		if p.Name == name {
			return p.Enabled
		}
	}
	return false
}

// Address is the listen address of the HTTP server.
func (s *Settings) Address() string {
	return s.IP + ":" + s.Port
}
