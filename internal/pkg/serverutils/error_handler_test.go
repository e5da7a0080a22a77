package serverutils

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	errors []map[string]interface{}
}

func (l *captureLogger) Debug(string, string, map[string]interface{}) {}
func (l *captureLogger) Info(string, string, map[string]interface{})  {}
func (l *captureLogger) Warn(string, string, map[string]interface{})  {}
func (l *captureLogger) Error(_, _ string, details map[string]interface{}) {
	l.errors = append(l.errors, details)
}
func (l *captureLogger) Sync() error { return nil }

func newHandlerFixture(lg *captureLogger, h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(lg))
	app.Get("/records", h)
	return app
}

func TestErrorHandlerMapsAppError(t *testing.T) {
	lg := &captureLogger{}
	app := newHandlerFixture(lg, func(ctx *fiber.Ctx) error {
		return ErrNotFoundOrUnauthorized
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/records", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
	assert.Empty(t, lg.errors, "expected failures are not logged as errors")
}

func TestErrorHandlerLogsUnhandledErrors(t *testing.T) {
	lg := &captureLogger{}
	app := newHandlerFixture(lg, func(ctx *fiber.Ctx) error {
		return errors.New("connection refused")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/records", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL_ERROR")
	assert.NotContains(t, string(body), "connection refused", "internal details stay server-side")

	require.Len(t, lg.errors, 1)
	assert.Equal(t, "connection refused", lg.errors[0]["error"])
	assert.Equal(t, "/records", lg.errors[0]["path"])
}
