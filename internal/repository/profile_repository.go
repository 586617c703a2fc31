package repository

import (
	"context"
	"errors"

	"talent-hub/internal/database"
	"talent-hub/internal/database/postgres"
	"talent-hub/internal/domain/profile"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileItemNotFound = errors.New("profile item not found")
	ErrSkillAlreadyExists  = errors.New("skill already exists")
)

type ProfileRepository interface {
	GetByEmail(ctx context.Context, email string) (profile.Profile, error)
	// EnsureByEmail returns the profile for email, creating an empty one on
	// first access.
	EnsureByEmail(ctx context.Context, email string) (profile.Profile, error)
	Update(ctx context.Context, p profile.Profile) error

	AddSkill(ctx context.Context, seekerID uuid.UUID, s profile.Skill) (profile.Skill, error)
	DeleteSkill(ctx context.Context, seekerID, skillID uuid.UUID) error
	AddExperience(ctx context.Context, seekerID uuid.UUID, e profile.Experience) (profile.Experience, error)
	DeleteExperience(ctx context.Context, seekerID, id uuid.UUID) error
	AddEducation(ctx context.Context, seekerID uuid.UUID, e profile.Education) (profile.Education, error)
	DeleteEducation(ctx context.Context, seekerID, id uuid.UUID) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, email, full_name, phone, location, bio, current_job_title, current_company,
	school, degree, resume_url, created_at, updated_at`

func (r *PostgresProfileRepository) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM job_seekers WHERE email = $1`, email)
	p, err := scanProfile(row)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := r.loadChildren(ctx, &p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) EnsureByEmail(ctx context.Context, email string) (profile.Profile, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_seekers (id, email) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	return r.GetByEmail(ctx, email)
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE job_seekers
		 SET full_name = $2, phone = $3, location = $4, bio = $5, current_job_title = $6,
			current_company = $7, school = $8, degree = $9, resume_url = $10, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.FullName, p.Phone, p.Location, p.Bio, p.CurrentJobTitle,
		p.CurrentCompany, p.School, p.Degree, p.ResumeURL,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) AddSkill(ctx context.Context, seekerID uuid.UUID, s profile.Skill) (profile.Skill, error) {
	var out profile.Skill
	err := r.changeChildren(ctx, seekerID, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO skills (id, seeker_id, name) VALUES ($1, $2, $3) RETURNING id, name, created_at`,
			s.ID, seekerID, s.Name,
		)
		if err := row.Scan(&out.ID, &out.Name, &out.CreatedAt); err != nil {
			if postgres.IsUniqueViolation(err, "") {
				return ErrSkillAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return profile.Skill{}, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) DeleteSkill(ctx context.Context, seekerID, skillID uuid.UUID) error {
	return r.deleteOwned(ctx, `DELETE FROM skills WHERE id = $1 AND seeker_id = $2`, skillID, seekerID)
}

func (r *PostgresProfileRepository) AddExperience(ctx context.Context, seekerID uuid.UUID, e profile.Experience) (profile.Experience, error) {
	err := r.changeChildren(ctx, seekerID, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO experience (id, seeker_id, title, company, start_date, end_date, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, seekerID, e.Title, e.Company, e.StartDate, e.EndDate, e.Description,
		)
		return err
	})
	if err != nil {
		return profile.Experience{}, err
	}
	return e, nil
}

func (r *PostgresProfileRepository) DeleteExperience(ctx context.Context, seekerID, id uuid.UUID) error {
	return r.deleteOwned(ctx, `DELETE FROM experience WHERE id = $1 AND seeker_id = $2`, id, seekerID)
}

func (r *PostgresProfileRepository) AddEducation(ctx context.Context, seekerID uuid.UUID, e profile.Education) (profile.Education, error) {
	err := r.changeChildren(ctx, seekerID, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO education (id, seeker_id, school, degree, field_of_study, start_year, end_year)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, seekerID, e.School, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear,
		)
		return err
	})
	if err != nil {
		return profile.Education{}, err
	}
	return e, nil
}

func (r *PostgresProfileRepository) DeleteEducation(ctx context.Context, seekerID, id uuid.UUID) error {
	return r.deleteOwned(ctx, `DELETE FROM education WHERE id = $1 AND seeker_id = $2`, id, seekerID)
}

func (r *PostgresProfileRepository) deleteOwned(ctx context.Context, q string, id, seekerID uuid.UUID) error {
	return r.changeChildren(ctx, seekerID, func(tx database.Tx) error {
		n, err := tx.Exec(ctx, q, id, seekerID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrProfileItemNotFound
		}
		return nil
	})
}

// changeChildren runs fn and bumps the profile's updated_at in the same
// transaction, so a skill or history change counts as a profile edit.
func (r *PostgresProfileRepository) changeChildren(ctx context.Context, seekerID uuid.UUID, fn func(tx database.Tx) error) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		n, err := tx.Exec(ctx, `UPDATE job_seekers SET updated_at = now() WHERE id = $1`, seekerID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
}

func (r *PostgresProfileRepository) loadChildren(ctx context.Context, p *profile.Profile) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM skills WHERE seeker_id = $1 ORDER BY created_at ASC, id ASC`, p.ID)
	if err != nil {
		return err
	}
	p.Skills = make([]profile.Skill, 0)
	for rows.Next() {
		var s profile.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		p.Skills = append(p.Skills, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, title, company, start_date, end_date, description
		 FROM experience WHERE seeker_id = $1 ORDER BY start_date DESC NULLS LAST, id ASC`, p.ID)
	if err != nil {
		return err
	}
	p.Experience = make([]profile.Experience, 0)
	for rows.Next() {
		var e profile.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			rows.Close()
			return err
		}
		p.Experience = append(p.Experience, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, school, degree, field_of_study, start_year, end_year
		 FROM education WHERE seeker_id = $1 ORDER BY end_year DESC NULLS FIRST, id ASC`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	p.Education = make([]profile.Education, 0)
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.StartYear, &e.EndYear); err != nil {
			return err
		}
		p.Education = append(p.Education, e)
	}
	return rows.Err()
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Location, &p.Bio, &p.CurrentJobTitle,
		&p.CurrentCompany, &p.School, &p.Degree, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}
