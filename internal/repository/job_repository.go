package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-hub/internal/database"
	"talent-hub/internal/database/postgres"
	"talent-hub/internal/domain/job"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type JobListFilter struct {
	Status   string
	Location string
	Title    string
	Limit    int
	Offset   int
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, f JobListFilter) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, description, location, employment_type, required_skills,
	experience_min, experience_max, salary_min, salary_max, status, created_by, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, title, description, location, employment_type, required_skills,
			experience_min, experience_max, salary_min, salary_max, status, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+jobColumns,
		j.ID, j.Title, j.Description, j.Location, j.EmploymentType, j.RequiredSkills,
		j.ExperienceMin, j.ExperienceMax, j.SalaryMin, j.SalaryMax, string(j.Status), j.CreatedBy,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, location = $4, employment_type = $5, required_skills = $6,
			experience_min = $7, experience_max = $8, salary_min = $9, salary_max = $10, status = $11,
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		j.ID, j.Title, j.Description, j.Location, j.EmploymentType, j.RequiredSkills,
		j.ExperienceMin, j.ExperienceMax, j.SalaryMin, j.SalaryMax, string(j.Status),
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]job.Job, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		add("status = $%d", s)
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		add("location ILIKE $%d", "%"+s+"%")
	}
	if s := strings.TrimSpace(f.Title); s != "" {
		add("title ILIKE $%d", "%"+s+"%")
	}

	q := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	q += fmt.Sprintf(` ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j      job.Job
		status string
	)
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Location, &j.EmploymentType, &j.RequiredSkills,
		&j.ExperienceMin, &j.ExperienceMax, &j.SalaryMin, &j.SalaryMax, &status, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	return j, nil
}
