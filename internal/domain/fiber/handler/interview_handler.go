package handler

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/fadilmartias/hireflow/internal/middleware"
	"github.com/fadilmartias/hireflow/internal/model"
	"github.com/fadilmartias/hireflow/internal/usecase"
	"github.com/fadilmartias/hireflow/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 * 1024 * 1024

type InterviewHandler struct {
	uc        *usecase.InterviewUsecase
	uploadDir string
}

func NewInterviewHandler(uc *usecase.InterviewUsecase, uploadDir string) *InterviewHandler {
	return &InterviewHandler{uc: uc, uploadDir: uploadDir}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	r := app.Group("/interview", middleware.Identity())
	r.Post("/start", middleware.RateLimiter(5, 1*time.Minute), h.Start)
	r.Post("/chat", middleware.RateLimiter(30, 1*time.Minute), h.Chat)
	r.Post("/log_violation", h.LogViolation)
	r.Post("/summarize/:id", middleware.RequireRole(model.RoleHR), h.Summarize)
}

func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	jobID := c.FormValue("job_id")
	if jobID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "job_id is required",
		})
	}
	experienceYears, _ := strconv.Atoi(c.FormValue("experience_years", "0"))

	var resumeText string
	var err error
	if c.FormValue("use_profile_resume") == "true" {
		resumeText, err = h.uc.ProfileResumeText(callerID(c))
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code: fiber.StatusBadRequest, Message: "No readable resume found on your profile",
			}, err)
		}
	} else {
		resumeText, err = h.extractUpload(c, "resume", filepath.Join(h.uploadDir, "resumes"))
		if err != nil {
			return err
		}
	}

	result, err := h.uc.StartInterview(c.Context(), callerID(c), jobID, resumeText, experienceYears)
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview started",
		Data:    result,
	})
}

func (h *InterviewHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "Invalid request body",
		}, err)
	}
	if req.ApplicationID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "application_id is required",
		})
	}

	result, err := h.uc.Chat(c.Context(), callerID(c), req)
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Message processed",
		Data:    result,
	})
}

func (h *InterviewHandler) LogViolation(c *fiber.Ctx) error {
	var req dto.ViolationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "Invalid request body",
		}, err)
	}

	result, err := h.uc.LogViolation(callerID(c), req.ApplicationID)
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Violation recorded",
		Data:    result,
	})
}

func (h *InterviewHandler) Summarize(c *fiber.Ctx) error {
	summary, err := h.uc.Summarize(c.Context(), callerID(c), c.Params("id"))
	if err != nil {
		return failureResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview summary generated",
		Data:    summary,
	})
}

// extractUpload saves a PDF form file and returns its extracted text.
func (h *InterviewHandler) extractUpload(c *fiber.Ctx, fieldName, dir string) (string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: fmt.Sprintf("%s file is required", fieldName),
		}, err)
	}
	if file.Size > maxUploadBytes {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: fmt.Sprintf("%s file is too large (max 5MB)", fieldName),
		})
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: fmt.Sprintf("unsupported %s file type, only PDF is accepted", fieldName),
		})
	}

	savePath := filepath.Join(dir, uuid.NewString()+".pdf")
	if err := c.SaveFile(file, savePath); err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fmt.Sprintf("cannot save %s file", fieldName),
		}, err)
	}

	content, err := util.ExtractPDFText(savePath)
	if err != nil {
		return "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: fmt.Sprintf("failed to extract %s text", fieldName),
		}, err)
	}
	return content, nil
}
