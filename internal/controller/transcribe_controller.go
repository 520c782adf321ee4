package controller

import (
	"io"

	"ai-journal-be/internal/apperrors"
	"ai-journal-be/internal/dto"
	"ai-journal-be/pkg/transcribe"

	"github.com/gofiber/fiber/v2"
)

type ITranscribeController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
}

type transcribeController struct {
	transcriber transcribe.Transcriber
}

func NewTranscribeController(transcriber transcribe.Transcriber) ITranscribeController {
	return &transcribeController{
		transcriber: transcriber,
	}
}

func (c *transcribeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transcribe/v1")
	h.Post("", c.Transcribe)
}

// Transcribe relays the uploaded audio to the speech-to-text service. The
// response body is the bare {text} contract the client expects.
func (c *transcribeController) Transcribe(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return apperrors.NewInputError("No audio file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInputError("No audio file provided")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInputError("Unable to read audio file")
	}

	text, err := c.transcriber.Transcribe(ctx.Context(), audio, fileHeader.Filename)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.TranscribeResponse{Text: text})
}
