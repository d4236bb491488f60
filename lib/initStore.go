package lib

import (
	"github.com/ether/etherpad-todolist/lib/db"
	"github.com/ether/etherpad-todolist/lib/downcast"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/io"
	"github.com/ether/etherpad-todolist/lib/settings"
	"github.com/ether/etherpad-todolist/lib/upcast"
	"github.com/ether/etherpad-todolist/lib/ws"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InitStore carries the shared services the HTTP routes are built from.
type InitStore struct {
	C                 *fiber.App
	RetrievedSettings *settings.Settings
	Store             db.DataStore
	Manager           *editor.Manager
	Handler           *ws.DocumentHandler
	Upcaster          *upcast.Converter
	Renderer          *downcast.Renderer
	Importer          *io.Importer
	Validator         *validator.Validate
	Logger            *zap.SugaredLogger
	Hooks             *hooks.Hook
}
