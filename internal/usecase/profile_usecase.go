package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-hub/internal/domain/identity"
	"talent-hub/internal/domain/matching"
	"talent-hub/internal/domain/profile"
	"talent-hub/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const profileDateLayout = "2006-01-02"

type ProfileView struct {
	Profile      profile.Profile
	Completeness int
}

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	FullName        *string
	Phone           *string
	Location        *string
	Bio             *string
	CurrentJobTitle *string
	CurrentCompany  *string
	School          *string
	Degree          *string
	ResumeURL       *string
}

type ExperienceInput struct {
	Title       string
	Company     string
	StartDate   string
	EndDate     string
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	StartYear    *int
	EndYear      *int
}

type ProfileUsecase interface {
	Get(ctx context.Context, who identity.Identity) (ProfileView, error)
	Update(ctx context.Context, who identity.Identity, in ProfileUpdate) (ProfileView, error)
	AddSkill(ctx context.Context, who identity.Identity, name string) (profile.Skill, error)
	RemoveSkill(ctx context.Context, who identity.Identity, id uuid.UUID) error
	AddExperience(ctx context.Context, who identity.Identity, in ExperienceInput) (profile.Experience, error)
	RemoveExperience(ctx context.Context, who identity.Identity, id uuid.UUID) error
	AddEducation(ctx context.Context, who identity.Identity, in EducationInput) (profile.Education, error)
	RemoveEducation(ctx context.Context, who identity.Identity, id uuid.UUID) error
}

type Profiles struct {
	repo   repository.ProfileRepository
	logger logrus.FieldLogger
}

func NewProfileUsecase(repo repository.ProfileRepository, logger logrus.FieldLogger) *Profiles {
	return &Profiles{repo: repo, logger: orDiscard(logger)}
}

func (u *Profiles) Get(ctx context.Context, who identity.Identity) (ProfileView, error) {
	p, err := u.own(ctx, who)
	if err != nil {
		return ProfileView{}, err
	}
	return view(p), nil
}

func (u *Profiles) Update(ctx context.Context, who identity.Identity, in ProfileUpdate) (ProfileView, error) {
	p, err := u.own(ctx, who)
	if err != nil {
		return ProfileView{}, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&p.FullName, in.FullName)
	apply(&p.Phone, in.Phone)
	apply(&p.Location, in.Location)
	apply(&p.Bio, in.Bio)
	apply(&p.CurrentJobTitle, in.CurrentJobTitle)
	apply(&p.CurrentCompany, in.CurrentCompany)
	apply(&p.School, in.School)
	apply(&p.Degree, in.Degree)
	apply(&p.ResumeURL, in.ResumeURL)

	if err := u.repo.Update(ctx, p); err != nil {
		u.logger.WithError(err).Error("update profile")
		return ProfileView{}, ErrInternal
	}
	p.UpdatedAt = time.Now().UTC()
	return view(p), nil
}

func (u *Profiles) AddSkill(ctx context.Context, who identity.Identity, name string) (profile.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return profile.Skill{}, fmt.Errorf("%w: skill name is required", ErrInvalidInput)
	}
	p, err := u.own(ctx, who)
	if err != nil {
		return profile.Skill{}, err
	}
	for _, s := range p.Skills {
		if matching.Normalize(s.Name) == matching.Normalize(name) {
			return profile.Skill{}, ErrSkillAlreadyExists
		}
	}

	created, err := u.repo.AddSkill(ctx, p.ID, profile.Skill{ID: uuid.New(), Name: name})
	if err != nil {
		if errors.Is(err, repository.ErrSkillAlreadyExists) {
			return profile.Skill{}, ErrSkillAlreadyExists
		}
		u.logger.WithError(err).Error("add skill")
		return profile.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *Profiles) RemoveSkill(ctx context.Context, who identity.Identity, id uuid.UUID) error {
	return u.removeItem(ctx, who, id, u.repo.DeleteSkill)
}

func (u *Profiles) AddExperience(ctx context.Context, who identity.Identity, in ExperienceInput) (profile.Experience, error) {
	e := profile.Experience{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Description: strings.TrimSpace(in.Description),
	}
	if e.Title == "" {
		return profile.Experience{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	var err error
	if e.StartDate, err = parseOptionalDate(in.StartDate, "start_date"); err != nil {
		return profile.Experience{}, err
	}
	if e.EndDate, err = parseOptionalDate(in.EndDate, "end_date"); err != nil {
		return profile.Experience{}, err
	}
	if e.StartDate != nil && e.EndDate != nil && e.EndDate.Before(*e.StartDate) {
		return profile.Experience{}, fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}

	p, err := u.own(ctx, who)
	if err != nil {
		return profile.Experience{}, err
	}
	created, err := u.repo.AddExperience(ctx, p.ID, e)
	if err != nil {
		u.logger.WithError(err).Error("add experience")
		return profile.Experience{}, ErrInternal
	}
	return created, nil
}

func (u *Profiles) RemoveExperience(ctx context.Context, who identity.Identity, id uuid.UUID) error {
	return u.removeItem(ctx, who, id, u.repo.DeleteExperience)
}

func (u *Profiles) AddEducation(ctx context.Context, who identity.Identity, in EducationInput) (profile.Education, error) {
	e := profile.Education{
		ID:           uuid.New(),
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		StartYear:    in.StartYear,
		EndYear:      in.EndYear,
	}
	if e.School == "" {
		return profile.Education{}, fmt.Errorf("%w: school is required", ErrInvalidInput)
	}
	if e.StartYear != nil && e.EndYear != nil && *e.EndYear < *e.StartYear {
		return profile.Education{}, fmt.Errorf("%w: end_year must not be before start_year", ErrInvalidInput)
	}

	p, err := u.own(ctx, who)
	if err != nil {
		return profile.Education{}, err
	}
	created, err := u.repo.AddEducation(ctx, p.ID, e)
	if err != nil {
		u.logger.WithError(err).Error("add education")
		return profile.Education{}, ErrInternal
	}
	return created, nil
}

func (u *Profiles) RemoveEducation(ctx context.Context, who identity.Identity, id uuid.UUID) error {
	return u.removeItem(ctx, who, id, u.repo.DeleteEducation)
}

// own loads the caller's profile, creating an empty one on first use.
func (u *Profiles) own(ctx context.Context, who identity.Identity) (profile.Profile, error) {
	if !who.IsJobSeeker() {
		return profile.Profile{}, ErrForbidden
	}
	email := identity.NormalizeEmail(who.Email)
	if email == "" {
		return profile.Profile{}, fmt.Errorf("%w: caller has no email", ErrInvalidInput)
	}
	p, err := u.repo.EnsureByEmail(ctx, email)
	if err != nil {
		u.logger.WithError(err).Error("load profile")
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) removeItem(ctx context.Context, who identity.Identity, id uuid.UUID, del func(context.Context, uuid.UUID, uuid.UUID) error) error {
	p, err := u.own(ctx, who)
	if err != nil {
		return err
	}
	if err := del(ctx, p.ID, id); err != nil {
		if errors.Is(err, repository.ErrProfileItemNotFound) {
			return ErrProfileItemNotFound
		}
		u.logger.WithError(err).Error("remove profile item")
		return ErrInternal
	}
	return nil
}

func view(p profile.Profile) ProfileView {
	return ProfileView{Profile: p, Completeness: profile.Completeness(p)}
}

func parseOptionalDate(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(profileDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, field)
	}
	return &t, nil
}
