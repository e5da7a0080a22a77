package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is a structured, recoverable failure surfaced to the
// caller. Services return these; the error handler middleware maps
// them onto HTTP responses.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

var (
	// ErrInvalidFileType rejects non-spreadsheet uploads before any
	// parsing attempt.
	ErrInvalidFileType = NewAppError(fiber.StatusBadRequest, "INVALID_FILE_TYPE", "Only .xls and .xlsx files are allowed")

	// ErrUnsupportedFormat reports bytes that cannot be decoded as a
	// workbook on paths that do not degrade.
	ErrUnsupportedFormat = NewAppError(fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "File could not be decoded as a spreadsheet")

	// ErrNotFoundOrUnauthorized conflates a missing record with an
	// ownership mismatch on read paths, so callers cannot probe for
	// the existence of other users' files.
	ErrNotFoundOrUnauthorized = NewAppError(fiber.StatusNotFound, "NOT_FOUND", "File not found or unauthorized")

	// ErrForbidden reports an ownership mismatch distinctly on the
	// delete path.
	ErrForbidden = NewAppError(fiber.StatusForbidden, "FORBIDDEN", "Unauthorized")

	// ErrFileMissingOnDisk means the record exists but its stored blob
	// is gone.
	ErrFileMissingOnDisk = NewAppError(fiber.StatusNotFound, "FILE_MISSING", "File not found on disk")

	// ErrIncompleteSelection means a chart build was attempted before
	// the mode's required fields were chosen.
	ErrIncompleteSelection = NewAppError(fiber.StatusUnprocessableEntity, "INCOMPLETE_SELECTION", "Please select required fields for the selected chart type")

	// ErrNothingRendered means an export was requested before any
	// chart was rendered in the session.
	ErrNothingRendered = NewAppError(fiber.StatusConflict, "NOTHING_RENDERED", "No chart available to export")

	// ErrSessionNotFound means the chart session id is unknown or has
	// expired.
	ErrSessionNotFound = NewAppError(fiber.StatusNotFound, "SESSION_NOT_FOUND", "Chart session not found or expired")
)
