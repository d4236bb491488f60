package convert

import (
	"errors"

	"github.com/ether/etherpad-todolist/lib"
	apiError "github.com/ether/etherpad-todolist/lib/api/errors"
	"github.com/ether/etherpad-todolist/lib/downcast"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/gofiber/fiber/v2"
)

type UpcastRequest struct {
	HTML string `json:"html"`
}

type UpcastResponse struct {
	Blocks []block.ListBlock `json:"blocks"`
}

type DowncastRequest struct {
	Blocks  []block.ListBlock `json:"blocks"`
	Variant string            `json:"variant" validate:"omitempty,oneof=data editing"`
}

type DowncastResponse struct {
	HTML string `json:"html"`
}

func Init(store *lib.InitStore) {
	store.C.Post("/api/convert/upcast", func(ctx *fiber.Ctx) error {
		var request UpcastRequest
		if err := ctx.BodyParser(&request); err != nil {
			return ctx.Status(400).JSON(apiError.InvalidRequestError)
		}

		blocks := store.Upcaster.Convert(request.HTML)
		if blocks == nil {
			blocks = []block.ListBlock{}
		}
		return ctx.JSON(UpcastResponse{Blocks: blocks})
	})

	store.C.Post("/api/convert/downcast", func(ctx *fiber.Ctx) error {
		var request DowncastRequest
		if err := ctx.BodyParser(&request); err != nil {
			return ctx.Status(400).JSON(apiError.InvalidRequestError)
		}
		if err := store.Validator.Struct(request); err != nil {
			return ctx.Status(422).JSON(apiError.NewValidationError(err.Error()))
		}

		variant, err := downcast.ParseVariant(request.Variant)
		if err != nil {
			return ctx.Status(400).JSON(apiError.NewInvalidParamError("variant"))
		}

		markup, err := store.Renderer.Render(request.Blocks, variant)
		var invariantErr *block.InvariantError
		if errors.As(err, &invariantErr) {
			return ctx.Status(422).JSON(apiError.NewValidationError(invariantErr.Error()))
		}
		if err != nil {
			store.Logger.Errorw("could not render blocks", "error", err)
			return ctx.Status(500).JSON(apiError.InternalServerError)
		}
		return ctx.JSON(DowncastResponse{HTML: markup})
	})
}
