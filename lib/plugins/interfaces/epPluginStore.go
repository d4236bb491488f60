package interfaces

import (
	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/settings"
	"go.uber.org/zap"
)

type EpPluginStore struct {
	Logger            *zap.SugaredLogger
	HookSystem        *hooks.Hook
	RetrievedSettings *settings.Settings
}
