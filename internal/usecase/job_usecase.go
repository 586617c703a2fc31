package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultJobListLimit = 20
	maxJobListLimit     = 50

	jobListCachePrefix = "jobs:list:"
)

type JobInput struct {
	Title          string
	Description    string
	Location       string
	EmploymentType string
	RequiredSkills []string
	ExperienceMin  *int
	ExperienceMax  *int
	SalaryMin      *int64
	SalaryMax      *int64
	Status         string
}

type JobListParams struct {
	Status   string
	Location string
	Title    string
	Limit    int
	Offset   int
}

type JobUsecase interface {
	Create(ctx context.Context, who identity.Identity, in JobInput) (job.Job, error)
	Update(ctx context.Context, who identity.Identity, id uuid.UUID, in JobInput) (job.Job, error)
	Get(ctx context.Context, who identity.Identity, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, who identity.Identity, params JobListParams) ([]job.Job, error)
	MatchPreview(ctx context.Context, who identity.Identity, jobID uuid.UUID, candidateSkills []string) (matching.Result, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	cache    Cache
	cacheTTL time.Duration
	logger   logrus.FieldLogger
}

func NewJobUsecase(jobs repository.JobRepository, cache Cache, cacheTTL time.Duration, logger logrus.FieldLogger) *Jobs {
	if cache == nil {
		cache = noopCache{}
	}
	return &Jobs{jobs: jobs, cache: cache, cacheTTL: cacheTTL, logger: orDiscard(logger)}
}

func (u *Jobs) Create(ctx context.Context, who identity.Identity, in JobInput) (job.Job, error) {
	if !who.CanManage() {
		return job.Job{}, ErrForbidden
	}
	j := in.toJob()
	j.ID = uuid.New()
	j.CreatedBy = who.Email
	if err := prepareJob(&j, in.Status); err != nil {
		return job.Job{}, err
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.logger.WithError(err).Error("create job")
		return job.Job{}, ErrInternal
	}
	u.invalidateLists(ctx)
	u.logger.WithFields(logrus.Fields{"job_id": created.ID, "by": who.Email}).Info("job created")
	return created, nil
}

// Update replaces the editable fields of a job. An empty status keeps the
// current one.
func (u *Jobs) Update(ctx context.Context, who identity.Identity, id uuid.UUID, in JobInput) (job.Job, error) {
	if !who.CanManage() {
		return job.Job{}, ErrForbidden
	}
	current, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, u.mapJobErr(err, "get job")
	}

	j := in.toJob()
	j.ID = current.ID
	j.CreatedBy = current.CreatedBy
	j.CreatedAt = current.CreatedAt
	status := in.Status
	if strings.TrimSpace(status) == "" {
		status = string(current.Status)
	}
	if err := prepareJob(&j, status); err != nil {
		return job.Job{}, err
	}

	updated, err := u.jobs.Update(ctx, j)
	if err != nil {
		return job.Job{}, u.mapJobErr(err, "update job")
	}
	u.invalidateLists(ctx)
	return updated, nil
}

// Get returns a job. Job seekers only see active postings.
func (u *Jobs) Get(ctx context.Context, who identity.Identity, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, u.mapJobErr(err, "get job")
	}
	if !visibleTo(who, j) {
		return job.Job{}, ErrJobNotFound
	}
	return j, nil
}

func (u *Jobs) List(ctx context.Context, who identity.Identity, params JobListParams) ([]job.Job, error) {
	if params.Limit == 0 {
		params.Limit = defaultJobListLimit
	}
	if params.Limit < 0 || params.Limit > maxJobListLimit || params.Offset < 0 {
		return nil, fmt.Errorf("%w: limit must be 1..%d and offset must not be negative", ErrInvalidInput, maxJobListLimit)
	}
	if s := strings.TrimSpace(params.Status); s != "" {
		st, ok := job.ParseStatus(s)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported status %q", ErrInvalidInput, s)
		}
		params.Status = string(st)
	}
	if who.IsJobSeeker() {
		params.Status = string(job.StatusActive)
	}

	key := jobListCacheKey(params)
	var cached []job.Job
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		u.logger.WithField("key", key).Debug("job list cache hit")
		return cached, nil
	}

	items, err := u.jobs.List(ctx, repository.JobListFilter{
		Status:   params.Status,
		Location: params.Location,
		Title:    params.Title,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		u.logger.WithError(err).Error("list jobs")
		return nil, ErrInternal
	}
	if err := u.cache.SetJSON(ctx, key, items, u.cacheTTL); err != nil {
		u.logger.WithError(err).Warn("cache job list")
	}
	return items, nil
}

// MatchPreview scores skills against a job the caller can see, without
// storing anything.
func (u *Jobs) MatchPreview(ctx context.Context, who identity.Identity, jobID uuid.UUID, candidateSkills []string) (matching.Result, error) {
	j, err := u.Get(ctx, who, jobID)
	if err != nil {
		return matching.Result{}, err
	}
	return matching.Score(j.RequiredSkills, candidateSkills), nil
}

// visibleTo hides postings that are not open from job seekers.
func visibleTo(who identity.Identity, j job.Job) bool {
	return !who.IsJobSeeker() || j.Status == job.StatusActive
}

func (u *Jobs) invalidateLists(ctx context.Context) {
	if err := u.cache.DeleteByPattern(ctx, jobListCachePrefix+"*"); err != nil {
		u.logger.WithError(err).Warn("invalidate job list cache")
	}
}

func (u *Jobs) mapJobErr(err error, op string) error {
	if errors.Is(err, repository.ErrJobNotFound) {
		return ErrJobNotFound
	}
	u.logger.WithError(err).Error(op)
	return ErrInternal
}

func (in JobInput) toJob() job.Job {
	return job.Job{
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		EmploymentType: in.EmploymentType,
		RequiredSkills: in.RequiredSkills,
		ExperienceMin:  in.ExperienceMin,
		ExperienceMax:  in.ExperienceMax,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
	}
}

func prepareJob(j *job.Job, status string) error {
	if strings.TrimSpace(status) != "" {
		st, ok := job.ParseStatus(status)
		if !ok {
			return fmt.Errorf("%w: unsupported status %q", ErrInvalidInput, status)
		}
		j.Status = st
	}
	j.Normalize()
	if err := j.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.TrimPrefix(err.Error(), job.ErrInvalidJob.Error()+": "))
	}
	return nil
}

func jobListCacheKey(p JobListParams) string {
	in := struct {
		Status   string `json:"status"`
		Location string `json:"location"`
		Title    string `json:"title"`
		Limit    int    `json:"limit"`
		Offset   int    `json:"offset"`
	}{
		Status:   p.Status,
		Location: normalizeSearchValue(p.Location),
		Title:    normalizeSearchValue(p.Title),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobListCachePrefix + hex.EncodeToString(sum[:])
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
