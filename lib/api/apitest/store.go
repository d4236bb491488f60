// Package apitest builds a fully wired InitStore for route tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ether/etherpad-todolist/lib"
	"github.com/ether/etherpad-todolist/lib/commands"
	"github.com/ether/etherpad-todolist/lib/db"
	"github.com/ether/etherpad-todolist/lib/downcast"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/hooks"
	todoio "github.com/ether/etherpad-todolist/lib/io"
	"github.com/ether/etherpad-todolist/lib/observer"
	"github.com/ether/etherpad-todolist/lib/settings"
	"github.com/ether/etherpad-todolist/lib/uid"
	"github.com/ether/etherpad-todolist/lib/upcast"
	"github.com/ether/etherpad-todolist/lib/ws"
	"github.com/ether/etherpad-todolist/lib/ws/ratelimiter"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewStore wires an in-memory store with per-document sequential ids, both list plugins'
// commands and a running websocket hub.
func NewStore(t *testing.T) *lib.InitStore {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg, err := settings.ReadConfig(`{}`)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	hook := hooks.NewHook()
	renderer := downcast.NewRenderer(hook, cfg.Editor.RenderCacheTTL, logger)
	dataStore := db.NewMemoryDataStore()

	manager := editor.NewManager(dataStore, func() *editor.Editor {
		ed := editor.New(uid.NewSequence(), hook, renderer, logger)
		commands.RegisterListCommands(ed)
		commands.RegisterTodoCommands(ed)
		return ed
	}, logger)

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	return &lib.InitStore{
		C:                 fiber.New(),
		RetrievedSettings: cfg,
		Store:             dataStore,
		Manager:           manager,
		Handler:           ws.NewDocumentHandler(manager, observer.NewPool(ctx, 8, logger), hub, ratelimiter.New(cfg.RateLimit), logger),
		Upcaster:          upcast.NewConverter(uid.NewSequence(), hook, logger),
		Renderer:          renderer,
		Importer:          todoio.NewImporter(cfg.Editor.SanitizeImports, 1024, logger),
		Validator:         validator.New(validator.WithRequiredStructEnabled()),
		Logger:            logger,
		Hooks:             hook,
	}
}

// Do sends a request with an optional JSON body and returns the response.
func Do(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Decode reads a JSON response body into out.
func Decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// Body returns the response body as a string.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
