package handler

import (
	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/fadilmartias/hireflow/internal/middleware"
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/fadilmartias/hireflow/internal/usecase"
	"github.com/fadilmartias/hireflow/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	uc *usecase.ApplicationUsecase
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	r := app.Group("/applications", middleware.Identity())
	r.Get("/my", h.My)
	r.Get("/:id", middleware.RequireRole(model.RoleHR), h.Detail)
	r.Put("/:id/status", middleware.RequireRole(model.RoleHR), h.UpdateStatus)
}

func (h *ApplicationHandler) My(c *fiber.Ctx) error {
	items, err := h.uc.MyApplications(callerID(c))
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    items,
	})
}

func (h *ApplicationHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.uc.Detail(callerID(c), c.Params("id"))
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    detail,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "Invalid request body",
		}, err)
	}

	if err := h.uc.UpdateStatus(callerID(c), c.Params("id"), model.Status(req.Status)); err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Status updated successfully",
		Data:    fiber.Map{"status": req.Status},
	})
}
