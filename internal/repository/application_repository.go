package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-hub/internal/database"
	"talent-hub/internal/database/postgres"
	"talent-hub/internal/domain/application"

	"github.com/google/uuid"
)

// applicationUniqueConstraint backs the one-application-per-candidate rule.
const applicationUniqueConstraint = "job_applications_job_candidate_key"

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job")
	// ErrStaleStatus means the row no longer had the expected status when the
	// guarded update ran.
	ErrStaleStatus = errors.New("application status changed concurrently")
)

type ApplicationListFilter struct {
	JobID          *uuid.UUID
	CandidateEmail string
	Status         string
	MinScore       *int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ExistsForCandidate(ctx context.Context, jobID uuid.UUID, email string) (bool, error)
	List(ctx context.Context, f ApplicationListFilter) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error)
	ScheduleInterview(ctx context.Context, id uuid.UUID, from application.Status, iv application.Interview) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_name, candidate_email, candidate_phone, skills, resume_url,
	cover_letter, resume_match_score, status, created_at, updated_at,
	scheduled_at, interviewer_id, meeting_link, interview_mode, interview_duration_minutes,
	interviewer_notes, assessment_token`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (id, job_id, candidate_name, candidate_email, candidate_phone, skills,
			resume_url, cover_letter, resume_match_score, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+applicationColumns,
		a.ID, a.JobID, a.CandidateName, a.CandidateEmail, a.CandidatePhone, a.Skills,
		a.ResumeURL, a.CoverLetter, a.MatchScore, string(a.Status),
	)
	created, err := scanApplication(row)
	if err != nil {
		if postgres.IsUniqueViolation(err, applicationUniqueConstraint) {
			return application.Application{}, ErrDuplicateApplication
		}
		if postgres.IsForeignKeyViolation(err) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, err
	}
	return created, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ExistsForCandidate(ctx context.Context, jobID uuid.UUID, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND candidate_email = $2)`,
		jobID, email,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, f ApplicationListFilter) ([]application.Application, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.JobID != nil {
		add("job_id = $%d", *f.JobID)
	}
	if s := strings.TrimSpace(f.CandidateEmail); s != "" {
		add("candidate_email = $%d", s)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		add("status = $%d", s)
	}
	if f.MinScore != nil {
		add("COALESCE(resume_match_score, 0) >= $%d", *f.MinScore)
	}

	q := `SELECT ` + applicationColumns + ` FROM job_applications`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY COALESCE(resume_match_score, 0) DESC, created_at DESC, id ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_applications
		 SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+applicationColumns,
		id, string(from), string(to),
	)
	updated, err := scanApplication(row)
	if errors.Is(err, ErrApplicationNotFound) {
		return application.Application{}, r.staleOrMissing(ctx, id)
	}
	return updated, err
}

// ScheduleInterview writes the status change and every interview field in
// one statement, so readers never see one without the other.
func (r *PostgresApplicationRepository) ScheduleInterview(ctx context.Context, id uuid.UUID, from application.Status, iv application.Interview) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_applications
		 SET status = $3,
			scheduled_at = $4,
			interviewer_id = $5,
			meeting_link = $6,
			interview_mode = $7,
			interview_duration_minutes = $8,
			interviewer_notes = $9,
			assessment_token = COALESCE($10, assessment_token),
			updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+applicationColumns,
		id, string(from), string(application.StatusInterviewing),
		iv.ScheduledAt, iv.InterviewerID, iv.MeetingLink, iv.Mode, iv.DurationMinutes, iv.Notes, iv.AssessmentToken,
	)
	updated, err := scanApplication(row)
	if errors.Is(err, ErrApplicationNotFound) {
		return application.Application{}, r.staleOrMissing(ctx, id)
	}
	return updated, err
}

func (r *PostgresApplicationRepository) staleOrMissing(ctx context.Context, id uuid.UUID) error {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_applications WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrStaleStatus
	}
	return ErrApplicationNotFound
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateName, &a.CandidateEmail, &a.CandidatePhone, &a.Skills, &a.ResumeURL,
		&a.CoverLetter, &a.MatchScore, &status, &a.CreatedAt, &a.UpdatedAt,
		&a.Interview.ScheduledAt, &a.Interview.InterviewerID, &a.Interview.MeetingLink, &a.Interview.Mode,
		&a.Interview.DurationMinutes, &a.Interview.Notes, &a.Interview.AssessmentToken,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	if a.Skills == nil {
		a.Skills = []string{}
	}
	return a, nil
}
