package serverutils

import (
	"errors"

	"excel-analytics-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates service errors into HTTP JSON.
// AppErrors map onto their own status; anything else is a 500 with a
// generic message, details logged server-side only.
func ErrorHandlerMiddleware(sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse("HTTP_ERROR", fiberErr.Message))
		}

		sysLogger.Error("http", "unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("INTERNAL_ERROR", "Something went wrong"))
	}
}
