package documents

import (
	"errors"

	"github.com/ether/etherpad-todolist/lib"
	"github.com/ether/etherpad-todolist/lib/api/constants"
	apiError "github.com/ether/etherpad-todolist/lib/api/errors"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/io"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/gofiber/fiber/v2"
)

type DocumentResponse struct {
	ID        string            `json:"id"`
	Blocks    []block.ListBlock `json:"blocks"`
	Data      string            `json:"data"`
	Selection editor.Selection  `json:"selection"`
}

type ImportRequest struct {
	Content string `json:"content"`
	Format  string `json:"format" validate:"omitempty,oneof=html markdown"`
}

type SelectionRequest struct {
	Start int `json:"start" validate:"min=0"`
	End   int `json:"end" validate:"min=0,gtefield=Start"`
}

type CommandRequest struct {
	ItemID     string `json:"itemId"`
	ForceValue *bool  `json:"forceValue"`
}

type CommandResponse struct {
	Command string `json:"command"`
	Applied bool   `json:"applied"`
}

type CommandStateResponse struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Value   bool   `json:"value"`
}

type DocumentListResponse struct {
	DocumentIds []string `json:"documentIds"`
}

func documentResponse(docID string, ed *editor.Editor) DocumentResponse {
	blocks := ed.Blocks()
	if blocks == nil {
		blocks = []block.ListBlock{}
	}
	return DocumentResponse{
		ID:        docID,
		Blocks:    blocks,
		Data:      ed.GetData(),
		Selection: ed.Selection(),
	}
}

func Init(store *lib.InitStore) {
	handlers := &documentHandlers{store: store}

	store.C.Get("/api/documents", handlers.list)
	store.C.Get("/api/documents/:docId", handlers.get)
	store.C.Put("/api/documents/:docId", handlers.put)
	store.C.Delete("/api/documents/:docId", handlers.remove)
	store.C.Get("/api/documents/:docId/data", handlers.data)
	store.C.Get("/api/documents/:docId/view", handlers.view)
	store.C.Post("/api/documents/:docId/selection", handlers.selection)
	store.C.Get("/api/documents/:docId/commands", handlers.commands)
	store.C.Post("/api/documents/:docId/commands/:command", handlers.execute)
}

type documentHandlers struct {
	store *lib.InitStore
}

// existing loads a stored document or writes a 404 response.
func (h *documentHandlers) existing(ctx *fiber.Ctx) (*editor.Editor, bool, error) {
	ed, err := h.store.Manager.Get(ctx.Params("docId"))
	if errors.Is(err, editor.ErrDocumentNotFound) {
		return nil, false, ctx.Status(404).JSON(apiError.DocumentNotFoundError)
	}
	if err != nil {
		h.store.Logger.Errorw("could not load document", "docId", ctx.Params("docId"), "error", err)
		return nil, false, ctx.Status(500).JSON(apiError.InternalServerError)
	}
	return ed, true, nil
}

func (h *documentHandlers) list(ctx *fiber.Ctx) error {
	ids, err := h.store.Manager.DocumentIds()
	if err != nil {
		h.store.Logger.Errorw("could not list documents", "error", err)
		return ctx.Status(500).JSON(apiError.InternalServerError)
	}
	return ctx.JSON(DocumentListResponse{DocumentIds: ids})
}

func (h *documentHandlers) get(ctx *fiber.Ctx) error {
	ed, ok, err := h.existing(ctx)
	if !ok {
		return err
	}
	return ctx.JSON(documentResponse(ctx.Params("docId"), ed))
}

func (h *documentHandlers) put(ctx *fiber.Ctx) error {
	var request ImportRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(400).JSON(apiError.InvalidRequestError)
	}
	if err := h.store.Validator.Struct(request); err != nil {
		return ctx.Status(422).JSON(apiError.NewValidationError(err.Error()))
	}
	format, err := io.ParseFormat(request.Format)
	if err != nil {
		return ctx.Status(400).JSON(apiError.NewInvalidParamError("format"))
	}

	docID := ctx.Params("docId")
	ed, err := h.store.Manager.Load(docID)
	if err != nil {
		h.store.Logger.Errorw("could not load document", "docId", docID, "error", err)
		return ctx.Status(500).JSON(apiError.InternalServerError)
	}

	err = h.store.Importer.Import(ed, request.Content, format)
	if errors.Is(err, io.ErrImportTooLarge) {
		return ctx.Status(413).JSON(apiError.ImportTooLargeError)
	}
	if err != nil {
		h.store.Logger.Errorw("could not import document", "docId", docID, "error", err)
		return ctx.Status(500).JSON(apiError.InternalServerError)
	}
	return ctx.JSON(documentResponse(docID, ed))
}

func (h *documentHandlers) remove(ctx *fiber.Ctx) error {
	docID := ctx.Params("docId")
	err := h.store.Manager.Remove(docID)
	if errors.Is(err, editor.ErrDocumentNotFound) {
		return ctx.Status(404).JSON(apiError.DocumentNotFoundError)
	}
	if err != nil {
		h.store.Logger.Errorw("could not remove document", "docId", docID, "error", err)
		return ctx.Status(500).JSON(apiError.InternalServerError)
	}
	if h.store.Handler != nil {
		h.store.Handler.Detach(docID)
	}
	return ctx.SendStatus(204)
}

func (h *documentHandlers) data(ctx *fiber.Ctx) error {
	format, err := io.ParseFormat(ctx.Query("format"))
	if err != nil {
		return ctx.Status(400).JSON(apiError.NewInvalidParamError("format"))
	}
	ed, ok, err := h.existing(ctx)
	if !ok {
		return err
	}

	out, err := io.Export(ed, format)
	if err != nil {
		return ctx.Status(500).JSON(apiError.InternalServerError)
	}
	ctx.Set(fiber.HeaderContentType, io.ContentType(format))
	return ctx.SendString(out)
}

func (h *documentHandlers) view(ctx *fiber.Ctx) error {
	ed, ok, err := h.existing(ctx)
	if !ok {
		return err
	}
	ctx.Set(fiber.HeaderContentType, constants.ContentTypeHTML)
	return ctx.SendString(ed.GetView())
}

func (h *documentHandlers) selection(ctx *fiber.Ctx) error {
	var request SelectionRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(400).JSON(apiError.InvalidRequestError)
	}
	if err := h.store.Validator.Struct(request); err != nil {
		return ctx.Status(422).JSON(apiError.NewValidationError(err.Error()))
	}
	ed, ok, err := h.existing(ctx)
	if !ok {
		return err
	}

	if err := ed.SetSelection(request.Start, request.End); err != nil {
		return ctx.Status(400).JSON(apiError.InvalidSelectionError)
	}
	return ctx.JSON(ed.Selection())
}

func (h *documentHandlers) commands(ctx *fiber.Ctx) error {
	ed, ok, err := h.existing(ctx)
	if !ok {
		return err
	}

	names := ed.Commands()
	states := make([]CommandStateResponse, 0, len(names))
	for _, name := range names {
		enabled, value, err := ed.CommandState(name, editor.Options{ItemID: ctx.Query("itemId")})
		if err != nil {
			continue
		}
		states = append(states, CommandStateResponse{Name: name, Enabled: enabled, Value: value})
	}
	return ctx.JSON(states)
}

func (h *documentHandlers) execute(ctx *fiber.Ctx) error {
	var request CommandRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&request); err != nil {
			return ctx.Status(400).JSON(apiError.InvalidRequestError)
		}
	}
	ed, ok, err := h.existing(ctx)
	if !ok {
		return err
	}

	command := ctx.Params("command")
	applied, err := ed.Execute(command, editor.Options{ItemID: request.ItemID, ForceValue: request.ForceValue})
	if errors.Is(err, editor.ErrUnknownCommand) {
		return ctx.Status(404).JSON(apiError.NewUnknownCommandError(command))
	}
	if err != nil {
		h.store.Logger.Warnw("command failed", "command", command, "error", err)
		return ctx.Status(500).JSON(apiError.InternalServerError)
	}
	return ctx.JSON(CommandResponse{Command: command, Applied: applied})
}
