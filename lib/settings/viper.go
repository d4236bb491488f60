package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var pluginKeys = []struct {
	name string
	key  string
}{
	{name: "ep_list", key: EpListEnabled},
	{name: "ep_todolist", key: EpTodolistEnabled},
	{name: "ep_list_stats", key: EpListStatsEnabled},
}

// NewViper returns a viper instance with the registry defaults, the
// TODOLIST_ environment prefix and settings.json lookup in the working
// directory.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("settings")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetEnvPrefix(strings.ToLower(envPrefix))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	ApplyRegistryDefaults(v)
	return v
}

// ReadConfig reads settings from jsonStr, or from settings.json when jsonStr
// is empty. A missing settings file is not an error.
func ReadConfig(jsonStr string) (*Settings, error) {
	v := NewViper()

	if jsonStr != "" {
		if err := v.ReadConfig(strings.NewReader(jsonStr)); err != nil {
			return nil, err
		}
	} else {
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Settings, error) {
	dbTypeToUse, err := ParseDBType(v.GetString(DBType))
	if err != nil {
		return nil, err
	}

	renderCacheTTL, err := time.ParseDuration(v.GetString(RenderCacheTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", RenderCacheTTL, err)
	}

	plugins := make([]PluginSettings, 0, len(pluginKeys))
	for _, p := range pluginKeys {
		plugins = append(plugins, PluginSettings{Name: p.name, Enabled: v.GetBool(p.key)})
	}

	s := &Settings{
		IP:       v.GetString(IP),
		Port:     v.GetString(Port),
		LogLevel: v.GetString(Loglevel),
		DevMode:  v.GetBool(DevMode),
		DBType:   dbTypeToUse,
		DBSettings: &DBSettings{
			Filename: v.GetString(DBSettingsFilename),
			Host:     v.GetString(DBSettingsHost),
			Port:     v.GetInt(DBSettingsPort),
			Database: v.GetString(DBSettingsDatabase),
			User:     v.GetString(DBSettingsUser),
			Password: v.GetString(DBSettingsPassword),
		},
		Editor: EditorSettings{
			IDGenerator:       v.GetString(IDGenerator),
			SanitizeImports:   v.GetBool(SanitizeImports),
			RenderCacheTTL:    renderCacheTTL,
			ObserverQueueSize: v.GetInt(ObserverQueueSize),
		},
		MaxMessageSize:    v.GetInt64(MaxMessageSize),
		RateLimit: RateLimitSettings{
			Duration: v.GetInt(RateLimitDuration),
			Points:   v.GetInt(RateLimitPoints),
		},
		ImportMaxFileSize: v.GetInt64(ImportMaxFileSize),
		Plugins:           plugins,
	}

	return s, nil
}
