package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first
// failure into a client-facing AppError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		return NewAppError(
			fiber.StatusBadRequest,
			"VALIDATION_ERROR",
			fmt.Sprintf("Field '%s' failed on the '%s' rule", fe.Field(), fe.Tag()),
		)
	}
	return NewAppError(fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
