package handler

import (
	"context"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/pkg/validation"
	"talent-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc       usecase.ProfileUsecase
	validate *validation.Validator
}

func NewProfileHandler(uc usecase.ProfileUsecase, v *validation.Validator) *ProfileHandler {
	return &ProfileHandler{uc: uc, validate: v}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/profile", middleware.RequireRoles(identity.RoleJobSeeker))
	grp.Get("/", h.Get)
	grp.Put("/", h.Update)
	grp.Post("/skills", h.AddSkill)
	grp.Delete("/skills/:id", h.RemoveSkill)
	grp.Post("/experience", h.AddExperience)
	grp.Delete("/experience/:id", h.RemoveExperience)
	grp.Post("/education", h.AddEducation)
	grp.Delete("/education/:id", h.RemoveEducation)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Get(c.Context(), who)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfileView(view))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	view, err := h.uc.Update(c.Context(), who, usecase.ProfileUpdate{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Location:        req.Location,
		Bio:             req.Bio,
		CurrentJobTitle: req.CurrentJobTitle,
		CurrentCompany:  req.CurrentCompany,
		School:          req.School,
		Degree:          req.Degree,
		ResumeURL:       req.ResumeURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfileView(view))
}

func (h *ProfileHandler) AddSkill(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req dto.AddSkillRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	s, err := h.uc.AddSkill(c.Context(), who, req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromSkill(s))
}

func (h *ProfileHandler) RemoveSkill(c fiber.Ctx) error {
	return h.remove(c, h.uc.RemoveSkill)
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req dto.ExperienceRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	e, err := h.uc.AddExperience(c.Context(), who, usecase.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromExperience(e))
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	return h.remove(c, h.uc.RemoveExperience)
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req dto.EducationRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	e, err := h.uc.AddEducation(c.Context(), who, usecase.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.FromEducation(e))
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	return h.remove(c, h.uc.RemoveEducation)
}

func (h *ProfileHandler) remove(c fiber.Ctx, del func(ctx context.Context, who identity.Identity, id uuid.UUID) error) error {
	who, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := del(c.Context(), who, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
