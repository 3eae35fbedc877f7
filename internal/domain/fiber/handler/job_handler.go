package handler

import (
	"path/filepath"
	"strconv"

	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/fadilmartias/hireflow/internal/middleware"
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/fadilmartias/hireflow/internal/usecase"
	"github.com/fadilmartias/hireflow/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc        *usecase.JobUsecase
	uploadDir string
}

func NewJobHandler(uc *usecase.JobUsecase, uploadDir string) *JobHandler {
	return &JobHandler{uc: uc, uploadDir: uploadDir}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	r := app.Group("/jobs", middleware.Identity())
	r.Post("/", middleware.RequireRole(model.RoleHR), h.Create)
	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/:id", h.Get)
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "Invalid request body",
		}, err)
	}
	if req.Title == "" || req.Description == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "title and description are required",
		})
	}

	// Optional company policy document, used by the interview Q&A flow.
	policyPath := ""
	if file, err := c.FormFile("policy"); err == nil {
		if file.Size > maxUploadBytes {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code: fiber.StatusBadRequest, Message: "policy file is too large (max 5MB)",
			})
		}
		policyPath = filepath.Join(h.uploadDir, "policies", uuid.NewString()+".pdf")
		if err := c.SaveFile(file, policyPath); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "cannot save policy file",
			}, err)
		}
	}

	job, err := h.uc.Create(c.Context(), callerID(c), req, policyPath)
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job posted",
		Data:    job,
	})
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.uc.List()
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get jobs",
		Data:    jobs,
	})
}

func (h *JobHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "q is required",
		})
	}
	topK, _ := strconv.Atoi(c.Query("limit", "10"))

	jobs, err := h.uc.Search(c.Context(), query, topK)
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search jobs",
		Data:    jobs,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data:    job,
	})
}
