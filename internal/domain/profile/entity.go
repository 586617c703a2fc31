package profile

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID              uuid.UUID
	Email           string
	FullName        string
	Phone           string
	Location        string
	Bio             string
	CurrentJobTitle string
	CurrentCompany  string
	School          string
	Degree          string
	ResumeURL       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Skills     []Skill
	Experience []Experience
	Education  []Education
}

type Skill struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Experience struct {
	ID          uuid.UUID
	Title       string
	Company     string
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

type Education struct {
	ID           uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	StartYear    *int
	EndYear      *int
}

func (p Profile) SkillNames() []string {
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		out = append(out, s.Name)
	}
	return out
}
