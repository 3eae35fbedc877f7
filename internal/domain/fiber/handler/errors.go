package handler

import (
	"errors"

	"github.com/fadilmartias/hireflow/internal/interview"
	"github.com/fadilmartias/hireflow/internal/middleware"
	"github.com/fadilmartias/hireflow/internal/repository"
	"github.com/fadilmartias/hireflow/internal/usecase"
	"github.com/fadilmartias/hireflow/internal/util"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// failureResponse maps usecase errors onto the HTTP surface. Anything
// unmapped is a 500 with a generic message.
func failureResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusNotFound, Message: "Record not found",
		}, err)
	case errors.Is(err, usecase.ErrNotOwner):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusForbidden, Message: "Access denied",
		}, err)
	case errors.Is(err, interview.ErrDisqualified):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusForbidden, Message: "This application was disqualified and the interview is closed",
		}, err)
	case errors.Is(err, usecase.ErrNotAResume):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "The uploaded document does not look like a resume",
		}, err)
	case errors.Is(err, usecase.ErrInsufficientExperience):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "This job requires more experience than reported",
		}, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusConflict, Message: "You have already applied to this job",
		}, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusBadRequest, Message: "Unsupported status value",
		}, err)
	case errors.Is(err, repository.ErrTurnConflict):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code: fiber.StatusConflict, Message: "Another message is still being processed, please retry",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Something went wrong",
		}, err)
	}
}

func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	return id
}
