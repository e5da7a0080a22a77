package controller

import (
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetStats(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("/stats", c.GetStats)
	h.Get("/users", c.ListUsers)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get admin stats", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListUsers(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get users", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get system logs", res))
}
