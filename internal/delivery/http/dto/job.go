package dto

import (
	"time"

	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/matching"

	"github.com/google/uuid"
)

type JobRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=20000"`
	Location       string   `json:"location" validate:"max=200"`
	EmploymentType string   `json:"employment_type" validate:"max=50"`
	RequiredSkills []string `json:"required_skills" validate:"max=100,dive,max=100"`
	ExperienceMin  *int     `json:"experience_min" validate:"omitempty,min=0"`
	ExperienceMax  *int     `json:"experience_max" validate:"omitempty,min=0"`
	SalaryMin      *int64   `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *int64   `json:"salary_max" validate:"omitempty,min=0"`
	Status         string   `json:"status" validate:"omitempty,oneof=active closed draft"`
}

type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	RequiredSkills []string  `json:"required_skills"`
	ExperienceMin  *int      `json:"experience_min"`
	ExperienceMax  *int      `json:"experience_max"`
	SalaryMin      *int64    `json:"salary_min"`
	SalaryMax      *int64    `json:"salary_max"`
	Status         string    `json:"status"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type JobListResponse struct {
	Items  []JobResponse `json:"items"`
	Offset int           `json:"offset"`
}

type MatchPreviewRequest struct {
	Skills []string `json:"skills" validate:"max=200,dive,max=100"`
}

type MatchResponse struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

func FromJob(j job.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		RequiredSkills: j.RequiredSkills,
		ExperienceMin:  j.ExperienceMin,
		ExperienceMax:  j.ExperienceMax,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		Status:         string(j.Status),
		CreatedBy:      j.CreatedBy,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func FromMatch(r matching.Result) MatchResponse {
	return MatchResponse{Score: r.Score, Matched: r.Matched, Missing: r.Missing}
}
