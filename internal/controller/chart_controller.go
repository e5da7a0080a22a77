package controller

import (
	"fmt"
	"io"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChartController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SetMode(ctx *fiber.Ctx) error
	SetSelection(ctx *fiber.Ctx) error
	BuildSeries(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	ExportImage(ctx *fiber.Ctx) error
	ExportReport(ctx *fiber.Ctx) error
}

type chartController struct {
	service service.IChartService
}

func NewChartController(service service.IChartService) IChartController {
	return &chartController{service: service}
}

func (c *chartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chart/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/session", c.CreateSession)
	h.Put("/session/:id/mode", c.SetMode)
	h.Put("/session/:id/selection", c.SetSelection)
	h.Post("/session/:id/series", c.BuildSeries)
	h.Post("/session/:id/export/image", c.ExportImage)
	h.Post("/session/:id/export/report", c.ExportReport)
	h.Post("/summary", c.Summary)
}

func (c *chartController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chart session created", res))
}

func (c *chartController) SetMode(ctx *fiber.Ctx) error {
	var req dto.SetChartModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SetMode(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chart mode updated", res))
}

func (c *chartController) SetSelection(ctx *fiber.Ctx) error {
	var req dto.SetChartSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SetSelection(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chart selection updated", res))
}

func (c *chartController) BuildSeries(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.BuildSeriesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.BuildSeries(ctx.Context(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chart series built", res))
}

func (c *chartController) Summary(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Summary(ctx.Context(), userId, req.UploadId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Summary generated", res))
}

// chartImage reads the externally rendered chart snapshot from the
// multipart form. The renderer runs client side; exports only embed
// what it captured.
func chartImage(ctx *fiber.Ctx) ([]byte, error) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "NO_IMAGE", "No chart image received")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (c *chartController) ExportImage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	image, err := chartImage(ctx)
	if err != nil {
		return err
	}

	data, fileName, err := c.service.ExportImage(ctx.Context(), userId, ctx.Params("id"), image)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Send(data)
}

func (c *chartController) ExportReport(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	uploadId, err := uuid.Parse(ctx.FormValue("upload_id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "INVALID_UPLOAD_ID", "Invalid upload id")
	}

	image, err := chartImage(ctx)
	if err != nil {
		return err
	}

	data, fileName, err := c.service.ExportReport(ctx.Context(), userId, ctx.Params("id"), uploadId, image)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.Send(data)
}
