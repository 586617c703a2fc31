package dto

import (
	"time"

	"talent-hub/internal/domain/profile"
	"talent-hub/internal/usecase"

	"github.com/google/uuid"
)

type ProfileUpdateRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,max=200"`
	Phone           *string `json:"phone" validate:"omitempty,max=50"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	Bio             *string `json:"bio" validate:"omitempty,max=5000"`
	CurrentJobTitle *string `json:"current_job_title" validate:"omitempty,max=200"`
	CurrentCompany  *string `json:"current_company" validate:"omitempty,max=200"`
	School          *string `json:"school" validate:"omitempty,max=200"`
	Degree          *string `json:"degree" validate:"omitempty,max=200"`
	ResumeURL       *string `json:"resume_url" validate:"omitempty,max=2000"`
}

type AddSkillRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ExperienceRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Company     string `json:"company" validate:"max=200"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description" validate:"max=5000"`
}

type EducationRequest struct {
	School       string `json:"school" validate:"required,max=200"`
	Degree       string `json:"degree" validate:"max=200"`
	FieldOfStudy string `json:"field_of_study" validate:"max=200"`
	StartYear    *int   `json:"start_year" validate:"omitempty,min=1900,max=2200"`
	EndYear      *int   `json:"end_year" validate:"omitempty,min=1900,max=2200"`
}

type SkillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ExperienceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Description string    `json:"description"`
}

type EducationResponse struct {
	ID           uuid.UUID `json:"id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"field_of_study"`
	StartYear    *int      `json:"start_year"`
	EndYear      *int      `json:"end_year"`
}

type ProfileResponse struct {
	ID              uuid.UUID            `json:"id"`
	Email           string               `json:"email"`
	FullName        string               `json:"full_name"`
	Phone           string               `json:"phone"`
	Location        string               `json:"location"`
	Bio             string               `json:"bio"`
	CurrentJobTitle string               `json:"current_job_title"`
	CurrentCompany  string               `json:"current_company"`
	School          string               `json:"school"`
	Degree          string               `json:"degree"`
	ResumeURL       string               `json:"resume_url"`
	Skills          []SkillResponse      `json:"skills"`
	Experience      []ExperienceResponse `json:"experience"`
	Education       []EducationResponse  `json:"education"`
	Completeness    int                  `json:"completeness"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func FromProfileView(v usecase.ProfileView) ProfileResponse {
	p := v.Profile
	out := ProfileResponse{
		ID:              p.ID,
		Email:           p.Email,
		FullName:        p.FullName,
		Phone:           p.Phone,
		Location:        p.Location,
		Bio:             p.Bio,
		CurrentJobTitle: p.CurrentJobTitle,
		CurrentCompany:  p.CurrentCompany,
		School:          p.School,
		Degree:          p.Degree,
		ResumeURL:       p.ResumeURL,
		Skills:          make([]SkillResponse, 0, len(p.Skills)),
		Experience:      make([]ExperienceResponse, 0, len(p.Experience)),
		Education:       make([]EducationResponse, 0, len(p.Education)),
		Completeness:    v.Completeness,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, s := range p.Skills {
		out.Skills = append(out.Skills, FromSkill(s))
	}
	for _, e := range p.Experience {
		out.Experience = append(out.Experience, FromExperience(e))
	}
	for _, e := range p.Education {
		out.Education = append(out.Education, FromEducation(e))
	}
	return out
}

func FromSkill(s profile.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name}
}

func FromExperience(e profile.Experience) ExperienceResponse {
	out := ExperienceResponse{ID: e.ID, Title: e.Title, Company: e.Company, Description: e.Description}
	if e.StartDate != nil {
		out.StartDate = e.StartDate.Format("2006-01-02")
	}
	if e.EndDate != nil {
		out.EndDate = e.EndDate.Format("2006-01-02")
	}
	return out
}

func FromEducation(e profile.Education) EducationResponse {
	return EducationResponse{
		ID:           e.ID,
		School:       e.School,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartYear:    e.StartYear,
		EndYear:      e.EndYear,
	}
}
