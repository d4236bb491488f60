package server

import (
	"context"
	"net/http"
	"os"

	"github.com/ether/etherpad-todolist/lib"
	api2 "github.com/ether/etherpad-todolist/lib/api"
	"github.com/ether/etherpad-todolist/lib/downcast"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/io"
	"github.com/ether/etherpad-todolist/lib/observer"
	"github.com/ether/etherpad-todolist/lib/plugins"
	"github.com/ether/etherpad-todolist/lib/plugins/interfaces"
	settings2 "github.com/ether/etherpad-todolist/lib/settings"
	"github.com/ether/etherpad-todolist/lib/uid"
	"github.com/ether/etherpad-todolist/lib/upcast"
	"github.com/ether/etherpad-todolist/lib/ws"
	"github.com/ether/etherpad-todolist/lib/ws/ratelimiter"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewStore wires every service of the server around app.
func NewStore(ctx context.Context, app *fiber.App, settings *settings2.Settings, setupLogger *zap.SugaredLogger) (*lib.InitStore, error) {
	dataStore, err := GetDB(settings, setupLogger)
	if err != nil {
		return nil, err
	}

	retrievedHooks := hooks.NewHook()
	loadedPlugins := plugins.InitPlugins(&interfaces.EpPluginStore{
		Logger:            setupLogger,
		HookSystem:        retrievedHooks,
		RetrievedSettings: settings,
	})

	renderer := downcast.NewRenderer(retrievedHooks, settings.Editor.RenderCacheTTL, setupLogger)
	manager := editor.NewManager(dataStore, func() *editor.Editor {
		ed := editor.New(uid.FromName(settings.Editor.IDGenerator), retrievedHooks, renderer, setupLogger)
		plugins.SetupEditor(ed, loadedPlugins)
		return ed
	}, setupLogger)

	globalHub := ws.NewHub(setupLogger)
	go globalHub.Run(ctx)

	observers := observer.NewPool(ctx, settings.Editor.ObserverQueueSize, setupLogger)
	handler := ws.NewDocumentHandler(manager, observers, globalHub, ratelimiter.New(settings.RateLimit), setupLogger)

	return &lib.InitStore{
		C:                 app,
		RetrievedSettings: settings,
		Store:             dataStore,
		Manager:           manager,
		Handler:           handler,
		Upcaster:          upcast.NewConverter(uid.FromName(settings.Editor.IDGenerator), retrievedHooks, setupLogger),
		Renderer:          renderer,
		Importer:          io.NewImporter(settings.Editor.SanitizeImports, settings.ImportMaxFileSize, setupLogger),
		Validator:         validator.New(validator.WithRequiredStructEnabled()),
		Logger:            setupLogger,
		Hooks:             retrievedHooks,
	}, nil
}

// RegisterRoutes mounts the HTTP API and the document websocket.
func RegisterRoutes(ctx context.Context, store *lib.InitStore) {
	api2.InitAPI(store)

	maxMessageSize := store.RetrievedSettings.MaxMessageSize
	store.C.Get("/ws/documents/:docId", func(c *fiber.Ctx) error {
		docID := c.Params("docId")
		return adaptor.HTTPHandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ws.ServeWs(ctx, writer, request, docID, store.Handler, maxMessageSize, store.Logger)
		})(c)
	})
}

func InitServer(settings *settings2.Settings, setupLogger *zap.SugaredLogger) {
	setupLogger.Info("Starting Etherpad Todolist...")
	setupLogger.Info("Report bugs at https://github.com/ether/etherpad-todolist/issues")
	setupLogger.Info("Your Etherpad Todolist version is " + settings2.Version())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             int(max(settings.ImportMaxFileSize*2, 4*1024*1024)),
	})

	store, err := NewStore(ctx, app, settings, setupLogger)
	if err != nil {
		setupLogger.Fatal("Error connecting to database: " + err.Error())
		return
	}
	defer store.Store.Close()

	RegisterRoutes(ctx, store)

	setupLogger.Info("Starting Web UI on " + settings.Address())
	if err := app.Listen(settings.Address()); err != nil {
		setupLogger.Error("Error starting web UI: " + err.Error())
		os.Exit(1)
	}
}
