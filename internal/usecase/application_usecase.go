package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 8

type SubmitApplicationInput struct {
	JobID          uuid.UUID
	CandidateName  string
	CandidatePhone string
	Skills         []string
	ResumeURL      string
	CoverLetter    string
}

type ApplicationListParams struct {
	Status   string
	MinScore *int
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, who identity.Identity, in SubmitApplicationInput) (application.Application, error)
	Get(ctx context.Context, who identity.Identity, id uuid.UUID) (application.Application, error)
	ListForJob(ctx context.Context, who identity.Identity, jobID uuid.UUID, params ApplicationListParams) ([]application.Application, error)
	ListMine(ctx context.Context, who identity.Identity) ([]application.Application, error)
	SetStatus(ctx context.Context, who identity.Identity, id uuid.UUID, target string) (application.Application, error)
	ScheduleInterview(ctx context.Context, who identity.Identity, id uuid.UUID, req application.ScheduleRequest) (application.Application, error)
	BulkSetStatus(ctx context.Context, who identity.Identity, ids []uuid.UUID, target string) (application.BulkResult, error)
}

type ApplicationDeps struct {
	Applications repository.ApplicationRepository
	Jobs         repository.JobRepository
	Profiles     repository.ProfileRepository
	Drafts       DraftStore
	Events       EventPublisher
	Logger       logrus.FieldLogger

	BulkConcurrency int
}

type Applications struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	drafts   DraftStore
	events   EventPublisher
	logger   logrus.FieldLogger

	bulkConcurrency int
}

func NewApplicationUsecase(d ApplicationDeps) *Applications {
	u := &Applications{
		apps:            d.Applications,
		jobs:            d.Jobs,
		profiles:        d.Profiles,
		drafts:          d.Drafts,
		events:          d.Events,
		logger:          orDiscard(d.Logger),
		bulkConcurrency: d.BulkConcurrency,
	}
	if u.drafts == nil {
		u.drafts = noopCache{}
	}
	if u.events == nil {
		u.events = noopPublisher{}
	}
	if u.bulkConcurrency <= 0 {
		u.bulkConcurrency = defaultBulkConcurrency
	}
	return u
}

// Submit records a job seeker's application. The candidate email always
// comes from the caller's identity. When no skills are declared the
// seeker's profile skills are scored instead.
func (u *Applications) Submit(ctx context.Context, who identity.Identity, in SubmitApplicationInput) (application.Application, error) {
	if !who.IsJobSeeker() {
		return application.Application{}, ErrForbidden
	}
	email := identity.NormalizeEmail(who.Email)
	if email == "" {
		return application.Application{}, fmt.Errorf("%w: caller has no email", ErrInvalidInput)
	}

	j, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		u.logger.WithError(err).Error("get job for application")
		return application.Application{}, ErrInternal
	}
	if !j.AcceptsApplications() {
		return application.Application{}, ErrJobClosed
	}

	exists, err := u.apps.ExistsForCandidate(ctx, j.ID, email)
	if err != nil {
		u.logger.WithError(err).Error("check existing application")
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrDuplicateApplication
	}

	name := strings.TrimSpace(in.CandidateName)
	phone := strings.TrimSpace(in.CandidatePhone)
	skills := cleanSkillList(in.Skills)
	if name == "" || phone == "" || len(skills) == 0 {
		p, err := u.profiles.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if name == "" {
				name = strings.TrimSpace(p.FullName)
			}
			if phone == "" {
				phone = strings.TrimSpace(p.Phone)
			}
			if len(skills) == 0 {
				skills = cleanSkillList(p.SkillNames())
			}
		case errors.Is(err, repository.ErrProfileNotFound):
		default:
			u.logger.WithError(err).Warn("load profile for application")
		}
	}
	if name == "" {
		return application.Application{}, fmt.Errorf("%w: candidate_name is required", ErrInvalidInput)
	}

	score := matching.Score(j.RequiredSkills, skills).Score
	a := application.Application{
		ID:             uuid.New(),
		JobID:          j.ID,
		CandidateName:  name,
		CandidateEmail: email,
		CandidatePhone: phone,
		Skills:         skills,
		ResumeURL:      strings.TrimSpace(in.ResumeURL),
		MatchScore:     &score,
		Status:         application.StatusSubmitted,
	}
	if cl := strings.TrimSpace(in.CoverLetter); cl != "" {
		a.CoverLetter = &cl
	}

	created, err := u.apps.Create(ctx, a)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateApplication):
			return application.Application{}, ErrDuplicateApplication
		case errors.Is(err, repository.ErrJobNotFound):
			return application.Application{}, ErrJobNotFound
		}
		u.logger.WithError(err).Error("create application")
		return application.Application{}, ErrInternal
	}

	if err := u.drafts.Delete(ctx, draftKey(email, j.ID)); err != nil {
		u.logger.WithError(err).Warn("discard draft")
	}
	u.logger.WithFields(logrus.Fields{
		"application_id": created.ID,
		"job_id":         j.ID,
		"score":          score,
	}).Info("application submitted")
	u.events.Publish(EventApplicationSubmitted, statusEvent(created))
	return created, nil
}

// Get returns an application to HR, or to the job seeker who submitted it.
func (u *Applications) Get(ctx context.Context, who identity.Identity, id uuid.UUID) (application.Application, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if who.CanManage() {
		return a, nil
	}
	if who.IsJobSeeker() && a.CandidateEmail == identity.NormalizeEmail(who.Email) {
		return a, nil
	}
	// Do not reveal other candidates' applications.
	return application.Application{}, ErrApplicationNotFound
}

// ListForJob returns a job's applications ordered by match score.
func (u *Applications) ListForJob(ctx context.Context, who identity.Identity, jobID uuid.UUID, params ApplicationListParams) ([]application.Application, error) {
	if !who.CanManage() {
		return nil, ErrForbidden
	}
	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		u.logger.WithError(err).Error("get job")
		return nil, ErrInternal
	}

	f := repository.ApplicationListFilter{JobID: &jobID, MinScore: params.MinScore}
	if s := strings.TrimSpace(params.Status); s != "" {
		st := application.Status(strings.ToLower(s))
		if !st.Known() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
		}
		f.Status = string(st)
	}
	if params.MinScore != nil && (*params.MinScore < 0 || *params.MinScore > 100) {
		return nil, fmt.Errorf("%w: min_score must be 0..100", ErrInvalidInput)
	}

	items, err := u.apps.List(ctx, f)
	if err != nil {
		u.logger.WithError(err).Error("list applications")
		return nil, ErrInternal
	}
	matching.Rank(items)
	return items, nil
}

func (u *Applications) ListMine(ctx context.Context, who identity.Identity) ([]application.Application, error) {
	if !who.IsJobSeeker() {
		return nil, ErrForbidden
	}
	items, err := u.apps.List(ctx, repository.ApplicationListFilter{CandidateEmail: identity.NormalizeEmail(who.Email)})
	if err != nil {
		u.logger.WithError(err).Error("list own applications")
		return nil, ErrInternal
	}
	return items, nil
}

// SetStatus moves one application to target. Moving to the current status
// returns the stored record untouched.
func (u *Applications) SetStatus(ctx context.Context, who identity.Identity, id uuid.UUID, target string) (application.Application, error) {
	if !who.CanManage() {
		return application.Application{}, ErrForbidden
	}
	to, err := parseTarget(target)
	if err != nil {
		return application.Application{}, err
	}

	updated, changed, err := u.setStatus(ctx, id, to)
	if err != nil {
		return application.Application{}, err
	}
	if changed {
		u.logger.WithFields(logrus.Fields{
			"application_id": id,
			"status":         to,
			"by":             who.Email,
		}).Info("application status changed")
		u.events.Publish(EventApplicationStatusChanged, statusEvent(updated))
	}
	return updated, nil
}

func (u *Applications) setStatus(ctx context.Context, id uuid.UUID, to application.Status) (application.Application, bool, error) {
	current, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, false, err
	}
	if current.Status == to {
		return current, false, nil
	}
	if err := application.CheckTransition(current.Status, to); err != nil {
		return application.Application{}, false, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, current.Status, to)
	}

	updated, err := u.apps.UpdateStatus(ctx, id, current.Status, to)
	if errors.Is(err, repository.ErrStaleStatus) {
		// Another writer got there first. Losing to the same target is a no-op.
		if latest, lerr := u.load(ctx, id); lerr == nil && latest.Status == to {
			return latest, false, nil
		}
	}
	if err != nil {
		return application.Application{}, false, u.mapWriteErr(err, id)
	}
	return updated, true, nil
}

// ScheduleInterview validates the schedule, then moves the application to
// interviewing and stores the schedule in one write. Rescheduling an
// application that is already interviewing is allowed.
func (u *Applications) ScheduleInterview(ctx context.Context, who identity.Identity, id uuid.UUID, req application.ScheduleRequest) (application.Application, error) {
	if !who.CanManage() {
		return application.Application{}, ErrForbidden
	}
	iv, err := application.BuildInterview(req)
	if err != nil {
		return application.Application{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.TrimPrefix(err.Error(), application.ErrInvalidSchedule.Error()+": "))
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if err := application.CheckTransition(current.Status, application.StatusInterviewing); err != nil {
		return application.Application{}, fmt.Errorf("%w: cannot schedule an interview for a %s application", ErrInvalidTransition, current.Status)
	}
	if req.SendAssessment {
		token := uuid.NewString()
		iv.AssessmentToken = &token
	}

	updated, err := u.apps.ScheduleInterview(ctx, id, current.Status, iv)
	if err != nil {
		return application.Application{}, u.mapWriteErr(err, id)
	}

	u.logger.WithFields(logrus.Fields{
		"application_id": id,
		"scheduled_at":   iv.ScheduledAt,
		"assessment":     req.SendAssessment,
	}).Info("interview scheduled")
	u.events.Publish(EventInterviewScheduled, statusEvent(updated))
	return updated, nil
}

// BulkSetStatus applies target to every id independently. Items that fail
// are reported and never undo the ones that succeeded.
func (u *Applications) BulkSetStatus(ctx context.Context, who identity.Identity, ids []uuid.UUID, target string) (application.BulkResult, error) {
	if !who.CanManage() {
		return application.BulkResult{}, ErrForbidden
	}
	to, err := parseTarget(target)
	if err != nil {
		return application.BulkResult{}, err
	}
	if !to.BulkTarget() {
		return application.BulkResult{}, fmt.Errorf("%w: bulk status must be %s or %s", ErrInvalidInput, application.StatusShortlisted, application.StatusRejected)
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return application.BulkResult{}, fmt.Errorf("%w: application_ids must not be empty", ErrInvalidInput)
	}

	errs := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(u.bulkConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			_, _, errs[i] = u.setStatus(ctx, id, to)
			return nil
		})
	}
	_ = g.Wait()

	res := application.BulkResult{
		Target:    to,
		Succeeded: make([]uuid.UUID, 0, len(ids)),
		Failed:    make([]application.BulkFailure, 0),
	}
	for i, id := range ids {
		if errs[i] != nil {
			res.Failed = append(res.Failed, application.BulkFailure{ID: id, Reason: errs[i].Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}

	u.logger.WithFields(logrus.Fields{
		"status":    to,
		"succeeded": len(res.Succeeded),
		"failed":    len(res.Failed),
		"by":        who.Email,
	}).Info("bulk status change")
	if len(res.Succeeded) > 0 {
		u.events.Publish(EventBulkStatusChanged, map[string]any{
			"status":          to,
			"application_ids": res.Succeeded,
		})
	}
	return res, nil
}

func (u *Applications) load(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		u.logger.WithError(err).WithField("application_id", id).Error("get application")
		return application.Application{}, ErrInternal
	}
	return a, nil
}

func (u *Applications) mapWriteErr(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, repository.ErrApplicationNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, repository.ErrStaleStatus):
		return ErrConflict
	}
	u.logger.WithError(err).WithField("application_id", id).Error("update application")
	return ErrInternal
}

func parseTarget(target string) (application.Status, error) {
	to := application.Status(strings.ToLower(strings.TrimSpace(target)))
	if !to.Known() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}
	return to, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cleanSkillList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func statusEvent(a application.Application) map[string]any {
	return map[string]any{
		"application_id": a.ID,
		"job_id":         a.JobID,
		"status":         a.Status,
		"match_score":    a.MatchScore,
		"updated_at":     a.UpdatedAt,
	}
}
