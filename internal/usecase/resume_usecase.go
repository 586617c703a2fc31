package usecase

import (
	"context"
	"errors"
	"fmt"

	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/domain/resume"
	"talent-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ResumeParseResult struct {
	Parsed resume.Parsed
	// Match is set when a job was given.
	Match *matching.Result
}

type ResumeUsecase interface {
	Parse(ctx context.Context, who identity.Identity, doc resume.Document, jobID *uuid.UUID) (ResumeParseResult, error)
}

type Resumes struct {
	extractor Extractor
	jobs      repository.JobRepository
	maxBytes  int64
	logger    logrus.FieldLogger
}

func NewResumeUsecase(extractor Extractor, jobs repository.JobRepository, maxBytes int64, logger logrus.FieldLogger) *Resumes {
	return &Resumes{extractor: extractor, jobs: jobs, maxBytes: maxBytes, logger: orDiscard(logger)}
}

// Parse extracts candidate details from a resume file. Extraction errors
// from the resume package are returned as-is so callers can tell them apart.
func (u *Resumes) Parse(ctx context.Context, who identity.Identity, doc resume.Document, jobID *uuid.UUID) (ResumeParseResult, error) {
	if len(doc.Data) == 0 {
		return ResumeParseResult{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if u.maxBytes > 0 && int64(len(doc.Data)) > u.maxBytes {
		return ResumeParseResult{}, resume.ErrTooLarge
	}
	if u.extractor == nil {
		return ResumeParseResult{}, resume.ErrUnavailable
	}

	parsed, err := u.extractor.Extract(ctx, doc)
	if err != nil {
		for _, known := range []error{resume.ErrInvalidFileType, resume.ErrPasswordProtected, resume.ErrUnparseable, resume.ErrTooLarge, resume.ErrUnavailable} {
			if errors.Is(err, known) {
				u.logger.WithError(err).WithField("file", doc.Filename).Info("resume rejected")
				return ResumeParseResult{}, known
			}
		}
		u.logger.WithError(err).WithField("file", doc.Filename).Error("extract resume")
		return ResumeParseResult{}, resume.ErrUnavailable
	}
	parsed.Skills = cleanSkillList(parsed.Skills)

	out := ResumeParseResult{Parsed: parsed}
	if jobID != nil {
		j, err := u.jobs.GetByID(ctx, *jobID)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				return ResumeParseResult{}, ErrJobNotFound
			}
			u.logger.WithError(err).Error("get job for resume preview")
			return ResumeParseResult{}, ErrInternal
		}
		if !visibleTo(who, j) {
			return ResumeParseResult{}, ErrJobNotFound
		}
		m := matching.Score(j.RequiredSkills, parsed.Skills)
		out.Match = &m
	}
	u.logger.WithFields(logrus.Fields{"by": who.Email, "skills": len(parsed.Skills)}).Debug("resume parsed")
	return out, nil
}
