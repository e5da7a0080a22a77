package controller

import (
	"fmt"
	"io"

	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type uploadController struct {
	service service.IUploadService
}

func NewUploadController(service service.IUploadService) IUploadController {
	return &uploadController{service: service}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Ingest)
	h.Get("/history", c.History)
	h.Get(":id", c.Show)
	h.Get(":id/preview", c.Preview)
	h.Get(":id/download", c.Download)
	h.Delete(":id", c.Delete)
}

func (c *uploadController) Ingest(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "NO_FILE", "No file received")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.service.Ingest(ctx.Context(), userId, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("File uploaded successfully", res))
}

func (c *uploadController) History(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get upload history", res))
}

func (c *uploadController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get upload", res))
}

func (c *uploadController) Preview(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Preview(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get preview", res))
}

func (c *uploadController) Download(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	data, fileName, err := c.service.Download(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Set(fiber.HeaderContentType, "application/octet-stream")
	return ctx.Send(data)
}

func (c *uploadController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted successfully", nil))
}
