package usecase

import (
	"context"
	"errors"
	"io"

	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ExportUsecase interface {
	// ExportCandidates writes the job's ranked candidates as a spreadsheet and
	// returns the job it was written for.
	ExportCandidates(ctx context.Context, who identity.Identity, jobID uuid.UUID, w io.Writer) (job.Job, error)
}

type Exports struct {
	jobs   repository.JobRepository
	apps   repository.ApplicationRepository
	writer SpreadsheetWriter
	logger logrus.FieldLogger
}

func NewExportUsecase(jobs repository.JobRepository, apps repository.ApplicationRepository, writer SpreadsheetWriter, logger logrus.FieldLogger) *Exports {
	return &Exports{jobs: jobs, apps: apps, writer: writer, logger: orDiscard(logger)}
}

func (u *Exports) ExportCandidates(ctx context.Context, who identity.Identity, jobID uuid.UUID, w io.Writer) (job.Job, error) {
	if !who.CanManage() {
		return job.Job{}, ErrForbidden
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		u.logger.WithError(err).Error("get job for export")
		return job.Job{}, ErrInternal
	}
	apps, err := u.apps.List(ctx, repository.ApplicationListFilter{JobID: &jobID})
	if err != nil {
		u.logger.WithError(err).Error("list applications for export")
		return job.Job{}, ErrInternal
	}
	matching.Rank(apps)

	if err := u.writer.WriteCandidates(w, j, apps); err != nil {
		u.logger.WithError(err).Error("write export")
		return job.Job{}, ErrInternal
	}
	u.logger.WithFields(logrus.Fields{"job_id": jobID, "rows": len(apps), "by": who.Email}).Info("candidates exported")
	return j, nil
}
