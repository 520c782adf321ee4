package serverutils

import (
	"errors"

	"ai-journal-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the application error taxonomy to HTTP
// responses. Controllers just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var inputErr *apperrors.InputError
		if errors.As(err, &inputErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(NewErrorResponse(inputErr.Message, "input_error"))
		}

		var configErr *apperrors.ConfigurationError
		if errors.As(err, &configErr) {
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(NewErrorResponse(configErr.Message, "configuration_error"))
		}

		// Upstream failures keep their original status code (the
		// transcription relay passes the remote status through verbatim).
		var upstreamErr *apperrors.UpstreamError
		if errors.As(err, &upstreamErr) {
			return ctx.Status(upstreamErr.StatusCode).
				JSON(NewErrorResponse(upstreamErr.Message, "gateway_error"))
		}

		var gatewayErr *apperrors.GatewayError
		if errors.As(err, &gatewayErr) {
			return ctx.Status(fiber.StatusBadGateway).
				JSON(NewErrorResponse(gatewayErr.Error(), "gateway_error"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(NewErrorResponse(fiberErr.Message, "http_error"))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(NewErrorResponse("internal server error", "internal_error"))
	}
}
