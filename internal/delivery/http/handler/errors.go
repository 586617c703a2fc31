package handler

import (
	"errors"

	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/resume"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/pkg/validation"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrProfileItemNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile item not found", nil, err)
	case errors.Is(err, usecase.ErrJobClosed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job is not accepting applications", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Application was modified by another request, reload and retry", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrDraftTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Draft is too large", nil, err)
	case errors.Is(err, resume.ErrTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file is too large", nil, err)
	case errors.Is(err, resume.ErrInvalidFileType):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Unsupported resume file type, upload a PDF or plain text file", nil, err)
	case errors.Is(err, resume.ErrPasswordProtected):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume is password protected", nil, err)
	case errors.Is(err, resume.ErrUnparseable):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume could not be read", nil, err)
	case errors.Is(err, resume.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Resume extraction is unavailable, fill the form manually", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func currentIdentity(c fiber.Ctx) (identity.Identity, error) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return identity.Identity{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return who, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

// bindBody decodes the JSON body into req and runs its validate tags.
func bindBody(c fiber.Ctx, v *validation.Validator, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return nil
}
