package handler

import (
	"strconv"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/pkg/validation"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc       usecase.ApplicationUsecase
	validate *validation.Validator
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, v *validation.Validator) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, validate: v}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	manage := middleware.RequireRoles(identity.RoleHR, identity.RoleAdmin)
	seeker := middleware.RequireRoles(identity.RoleJobSeeker)

	r.Post("/jobs/:id/applications", seeker, h.Submit)
	r.Get("/jobs/:id/applications", manage, h.ListForJob)
	r.Get("/me/applications", seeker, h.ListMine)

	grp := r.Group("/applications")
	grp.Post("/bulk-status", manage, h.BulkStatus)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id/status", manage, h.SetStatus)
	grp.Post("/:id/interview", manage, h.ScheduleInterview)
}

func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.SubmitApplicationRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	app, err := h.uc.Submit(c.Context(), who, usecase.SubmitApplicationInput{
		JobID:          jobID,
		CandidateName:  req.CandidateName,
		CandidatePhone: req.CandidatePhone,
		Skills:         req.Skills,
		ResumeURL:      req.ResumeURL,
		CoverLetter:    req.CoverLetter,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromApplication(app, false))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.uc.Get(c.Context(), who, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(app, who.CanManage()))
}

// ListForJob returns a job's applications best match first. Optional
// filters: status and min_score.
func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	params := usecase.ApplicationListParams{Status: c.Query("status")}
	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid min_score", nil, err)
		}
		params.MinScore = &v
	}

	items, err := h.uc.ListForJob(c.Context(), who, jobID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(items, true))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), who)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(items, false))
}

func (h *ApplicationHandler) SetStatus(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.SetStatusRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	app, err := h.uc.SetStatus(c.Context(), who, id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(app, true))
}

func (h *ApplicationHandler) ScheduleInterview(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ScheduleInterviewRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	app, err := h.uc.ScheduleInterview(c.Context(), who, id, application.ScheduleRequest{
		ScheduledAt:     req.ScheduledAt,
		InterviewerID:   req.InterviewerID,
		MeetingLink:     req.MeetingLink,
		Mode:            req.InterviewMode,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		SendAssessment:  req.SendAssessment,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(app, true))
}

// BulkStatus answers 200 even when some items failed; the body reports each
// id's outcome.
func (h *ApplicationHandler) BulkStatus(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req dto.BulkStatusRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	res, err := h.uc.BulkSetStatus(c.Context(), who, req.ApplicationIDs, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, string(res.Outcome()), dto.FromBulkResult(res))
}
