package seeder

import (
	"context"

	"talent-hub/internal/database"
	"talent-hub/internal/domain/job"

	"github.com/google/uuid"
)

const demoOwner = "hr@talent-hub.local"

var demoNamespace = uuid.MustParse("6f1d2c4e-8a7b-4f3e-9c5d-2b1a0e9f8d7c")

type DemoJobs struct{}

func (DemoJobs) Name() string { return "jobs" }

func (DemoJobs) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "title", "description", "location", "employment_type", "required_skills",
		"experience_min", "experience_max", "salary_min", "salary_max", "status", "created_by",
	); err != nil {
		return err
	}

	items, err := DemoJobList()
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, j := range items {
			_, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, title, description, location, employment_type, required_skills,
					experience_min, experience_max, salary_min, salary_max, status, created_by)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				 ON CONFLICT (id) DO NOTHING`,
				j.ID, j.Title, j.Description, j.Location, j.EmploymentType, j.RequiredSkills,
				j.ExperienceMin, j.ExperienceMax, j.SalaryMin, j.SalaryMax, string(j.Status), j.CreatedBy,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DemoJobList returns the demo postings, normalized and validated. Ids are
// derived from the title so re-seeding never duplicates a posting.
func DemoJobList() ([]job.Job, error) {
	years := func(v int) *int { return &v }
	idr := func(v int64) *int64 { return &v }

	items := []job.Job{
		{
			Title:          "Backend Engineer (Go)",
			Location:       "Jakarta, ID",
			EmploymentType: "Full-time",
			Description:    "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
			RequiredSkills: []string{"Go", "PostgreSQL", "Redis", "Docker"},
			ExperienceMin:  years(2),
			ExperienceMax:  years(5),
			SalaryMin:      idr(15_000_000),
			SalaryMax:      idr(25_000_000),
		},
		{
			Title:          "Fullstack Engineer (React + Go)",
			Location:       "Bandung, ID",
			EmploymentType: "Full-time",
			Description:    "Develop web apps with React and TypeScript on top of Go services.",
			RequiredSkills: []string{"React", "TypeScript", "Go", "SQL"},
			ExperienceMin:  years(1),
		},
		{
			Title:          "DevOps Engineer",
			Location:       "Remote",
			EmploymentType: "Contract",
			Description:    "Operate CI/CD, Docker, Kubernetes and cloud infrastructure for production workloads.",
			RequiredSkills: []string{"Docker", "Kubernetes", "AWS", "Terraform"},
			ExperienceMin:  years(3),
		},
		{
			Title:          "Data Engineer",
			Location:       "Surabaya, ID",
			EmploymentType: "Full-time",
			Description:    "Build data pipelines and tune PostgreSQL for analytics.",
			RequiredSkills: []string{"Python", "SQL", "Docker"},
		},
		{
			Title:          "QA Intern",
			Location:       "Jakarta, ID",
			EmploymentType: "Internship",
			Description:    "Closed posting kept for history.",
			RequiredSkills: []string{"Testing"},
			Status:         job.StatusClosed,
		},
	}

	for i := range items {
		items[i].ID = uuid.NewSHA1(demoNamespace, []byte("job:"+items[i].Title))
		items[i].CreatedBy = demoOwner
		items[i].Normalize()
		if err := items[i].Validate(); err != nil {
			return nil, err
		}
	}
	return items, nil
}
