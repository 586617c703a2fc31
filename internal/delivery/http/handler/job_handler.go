package handler

import (
	"strconv"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/pkg/validation"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc       usecase.JobUsecase
	validate *validation.Validator
}

func NewJobHandler(uc usecase.JobUsecase, v *validation.Validator) *JobHandler {
	return &JobHandler{uc: uc, validate: v}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	manage := middleware.RequireRoles(identity.RoleHR, identity.RoleAdmin)

	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Post("/", manage, h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", manage, h.Update)
	grp.Post("/:id/match-preview", h.MatchPreview)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	items, err := h.uc.List(c.Context(), who, usecase.JobListParams{
		Status:   c.Query("status"),
		Location: c.Query("location"),
		Title:    c.Query("title"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.JobListResponse{Items: make([]dto.JobResponse, 0, len(items)), Offset: offset}
	for _, j := range items {
		out.Items = append(out.Items, dto.FromJob(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), who, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req dto.JobRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), who, jobInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromJob(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.JobRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	j, err := h.uc.Update(c.Context(), who, id, jobInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

// MatchPreview scores unsaved form skills against a job while the candidate
// is still typing. Nothing is stored.
func (h *JobHandler) MatchPreview(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.MatchPreviewRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	res, err := h.uc.MatchPreview(c.Context(), who, id, req.Skills)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatch(res))
}

func jobInput(req dto.JobRequest) usecase.JobInput {
	return usecase.JobInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		RequiredSkills: req.RequiredSkills,
		ExperienceMin:  req.ExperienceMin,
		ExperienceMax:  req.ExperienceMax,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Status:         req.Status,
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
