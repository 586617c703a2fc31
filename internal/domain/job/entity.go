package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

var ErrInvalidJob = errors.New("invalid job")

type Job struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Location       string
	EmploymentType string
	RequiredSkills []string
	ExperienceMin  *int
	ExperienceMax  *int
	SalaryMin      *int64
	SalaryMax      *int64
	Status         Status
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (j Job) AcceptsApplications() bool {
	return j.Status == StatusActive
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusClosed, StatusDraft:
		return st, true
	default:
		return "", false
	}
}

// Normalize trims text fields and drops blank skills in place.
func (j *Job) Normalize() {
	j.Title = strings.TrimSpace(j.Title)
	j.Description = strings.TrimSpace(j.Description)
	j.Location = strings.TrimSpace(j.Location)
	j.EmploymentType = strings.TrimSpace(j.EmploymentType)
	j.RequiredSkills = CleanSkills(j.RequiredSkills)
	if j.Status == "" {
		j.Status = StatusActive
	}
}

// Validate checks the invariants enforced on create and edit. Ranges are
// reported, never corrected.
func (j Job) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidJob)
	}
	if _, ok := ParseStatus(string(j.Status)); !ok {
		return fmt.Errorf("%w: unsupported status %q", ErrInvalidJob, j.Status)
	}
	if (j.ExperienceMin != nil && *j.ExperienceMin < 0) || (j.ExperienceMax != nil && *j.ExperienceMax < 0) {
		return fmt.Errorf("%w: experience must not be negative", ErrInvalidJob)
	}
	if j.ExperienceMin != nil && j.ExperienceMax != nil && *j.ExperienceMin > *j.ExperienceMax {
		return fmt.Errorf("%w: experience_min must not exceed experience_max", ErrInvalidJob)
	}
	if (j.SalaryMin != nil && *j.SalaryMin < 0) || (j.SalaryMax != nil && *j.SalaryMax < 0) {
		return fmt.Errorf("%w: salary must not be negative", ErrInvalidJob)
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return fmt.Errorf("%w: salary_min must not exceed salary_max", ErrInvalidJob)
	}
	return nil
}

func CleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
