package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-hub/internal/domain/identity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const MaxDraftBytes = 64 << 10

type DraftUsecase interface {
	Get(ctx context.Context, who identity.Identity, jobID uuid.UUID) (json.RawMessage, bool, error)
	Save(ctx context.Context, who identity.Identity, jobID uuid.UUID, data json.RawMessage) error
	Delete(ctx context.Context, who identity.Identity, jobID uuid.UUID) error
}

// Drafts keeps one unsent application form per seeker and job. Drafts are
// disposable: when the store is down saves succeed silently and reads miss.
type Drafts struct {
	store  DraftStore
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewDraftUsecase(store DraftStore, ttl time.Duration, logger logrus.FieldLogger) *Drafts {
	if store == nil {
		store = noopCache{}
	}
	return &Drafts{store: store, ttl: ttl, logger: orDiscard(logger)}
}

func (u *Drafts) Get(ctx context.Context, who identity.Identity, jobID uuid.UUID) (json.RawMessage, bool, error) {
	key, err := u.key(who, jobID)
	if err != nil {
		return nil, false, err
	}
	b, ok, err := u.store.GetBytes(ctx, key)
	if err != nil {
		u.logger.WithError(err).Warn("read draft")
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}
	return json.RawMessage(b), true, nil
}

func (u *Drafts) Save(ctx context.Context, who identity.Identity, jobID uuid.UUID, data json.RawMessage) error {
	key, err := u.key(who, jobID)
	if err != nil {
		return err
	}
	if len(data) > MaxDraftBytes {
		return ErrDraftTooLarge
	}
	if len(data) == 0 || !json.Valid(data) {
		return fmt.Errorf("%w: draft must be a JSON document", ErrInvalidInput)
	}
	if err := u.store.SetBytes(ctx, key, data, u.ttl); err != nil {
		u.logger.WithError(err).Warn("save draft")
	}
	return nil
}

func (u *Drafts) Delete(ctx context.Context, who identity.Identity, jobID uuid.UUID) error {
	key, err := u.key(who, jobID)
	if err != nil {
		return err
	}
	if err := u.store.Delete(ctx, key); err != nil {
		u.logger.WithError(err).Warn("delete draft")
	}
	return nil
}

func (u *Drafts) key(who identity.Identity, jobID uuid.UUID) (string, error) {
	if !who.IsJobSeeker() {
		return "", ErrForbidden
	}
	email := identity.NormalizeEmail(who.Email)
	if email == "" || jobID == uuid.Nil {
		return "", ErrInvalidInput
	}
	return draftKey(email, jobID), nil
}

func draftKey(email string, jobID uuid.UUID) string {
	return "drafts:" + email + ":" + jobID.String()
}
