package settings

// Configuration keys, as used in settings.json. Nested keys are dotted.
const (
	IP                 = "ip"
	Port               = "port"
	Loglevel           = "loglevel"
	DevMode            = "devMode"
	DBType             = "dbType"
	DBSettingsHost     = "dbSettings.host"
	DBSettingsPort     = "dbSettings.port"
	DBSettingsUser     = "dbSettings.user"
	DBSettingsPassword = "dbSettings.password"
	DBSettingsDatabase = "dbSettings.database"
	DBSettingsFilename = "dbSettings.filename"

	IDGenerator       = "editor.idGenerator"
	SanitizeImports   = "editor.sanitizeImports"
	RenderCacheTTL    = "editor.renderCacheTTL"
	ObserverQueueSize = "editor.observerQueueSize"
	MaxMessageSize    = "ws.maxMessageSize"
	RateLimitDuration = "ws.rateLimit.duration"
	RateLimitPoints   = "ws.rateLimit.points"
	ImportMaxFileSize = "importMaxFileSize"

	EpListEnabled      = "plugins.ep_list.enabled"
	EpTodolistEnabled  = "plugins.ep_todolist.enabled"
	EpListStatsEnabled = "plugins.ep_list_stats.enabled"
)
