package seeder

import (
	"context"
	"fmt"
	"time"

	"talent-hub/internal/database"

	"github.com/sirupsen/logrus"
)

// Seeder loads one kind of demo data. Seeders must be safe to re-run.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
	Logger  logrus.FieldLogger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.WithFields(logrus.Fields{"seeder": s.Name(), "took": time.Since(start).String()}).Info("seeded")
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{DemoJobs{}, DemoSeekers{}}
}
