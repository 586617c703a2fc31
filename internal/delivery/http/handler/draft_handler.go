package handler

import (
	"encoding/json"

	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DraftHandler struct {
	uc usecase.DraftUsecase
}

func NewDraftHandler(uc usecase.DraftUsecase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

func (h *DraftHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/drafts", middleware.RequireRoles(identity.RoleJobSeeker))
	grp.Get("/:job_id", h.Get)
	grp.Put("/:job_id", h.Save)
	grp.Delete("/:job_id", h.Delete)
}

func (h *DraftHandler) Get(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	data, ok, err := h.uc.Get(c.Context(), who, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if !ok {
		return middleware.NewAppError(fiber.StatusNotFound, "Draft not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// Save stores the request body as-is. The body is the draft.
func (h *DraftHandler) Save(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	body := c.Body()
	data := make(json.RawMessage, len(body))
	copy(data, body)

	if err := h.uc.Save(c.Context(), who, jobID, data); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *DraftHandler) Delete(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), who, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
