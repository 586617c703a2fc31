package seeder

import (
	"context"

	"talent-hub/internal/database"
	"talent-hub/internal/domain/profile"

	"github.com/google/uuid"
)

type DemoSeekers struct{}

func (DemoSeekers) Name() string { return "job_seekers" }

func (DemoSeekers) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_seekers", "id", "email", "full_name", "location", "bio", "current_job_title"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skills", "id", "seeker_id", "name"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range DemoProfiles() {
			_, err := tx.Exec(ctx,
				`INSERT INTO job_seekers (id, email, full_name, location, bio, current_job_title)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (email) DO NOTHING`,
				p.ID, p.Email, p.FullName, p.Location, p.Bio, p.CurrentJobTitle,
			)
			if err != nil {
				return err
			}

			var seekerID uuid.UUID
			if err := tx.QueryRow(ctx, `SELECT id FROM job_seekers WHERE email = $1`, p.Email).Scan(&seekerID); err != nil {
				return err
			}
			for _, s := range p.Skills {
				if _, err := tx.Exec(ctx,
					`INSERT INTO skills (id, seeker_id, name) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
					s.ID, seekerID, s.Name,
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func DemoProfiles() []profile.Profile {
	items := []struct {
		email, name, location, title string
		skills                       []string
	}{
		{"ana@talent-hub.local", "Ana Putri", "Jakarta, ID", "Backend Engineer", []string{"Go", "PostgreSQL", "Docker"}},
		{"budi@talent-hub.local", "Budi Santoso", "Bandung, ID", "Frontend Engineer", []string{"React", "TypeScript"}},
		{"citra@talent-hub.local", "Citra Lestari", "Remote", "Data Analyst", []string{"Python", "SQL"}},
	}

	out := make([]profile.Profile, 0, len(items))
	for _, it := range items {
		p := profile.Profile{
			ID:              uuid.NewSHA1(demoNamespace, []byte("seeker:"+it.email)),
			Email:           it.email,
			FullName:        it.name,
			Location:        it.location,
			Bio:             "Demo profile.",
			CurrentJobTitle: it.title,
		}
		for _, s := range it.skills {
			p.Skills = append(p.Skills, profile.Skill{ID: uuid.NewSHA1(demoNamespace, []byte("skill:"+it.email+":"+s)), Name: s})
		}
		out = append(out, p)
	}
	return out
}

// IdentityID is the stable user id dev tokens carry for an email.
func IdentityID(email string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte("user:"+email))
}
