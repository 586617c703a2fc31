package usecase

import (
	"context"
	"io"
	"time"

	"talent-hub/internal/domain/application"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/domain/resume"
)

// Cache is a best-effort JSON cache. Implementations treat an unreachable
// backend as a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type DraftStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher fans workflow events out to live dashboards. Publish must
// not block.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

type Extractor interface {
	Extract(ctx context.Context, doc resume.Document) (resume.Parsed, error)
}

type SpreadsheetWriter interface {
	WriteCandidates(w io.Writer, j job.Job, apps []application.Application) error
}

const (
	EventApplicationSubmitted     = "application_submitted"
	EventApplicationStatusChanged = "application_status_changed"
	EventInterviewScheduled       = "interview_scheduled"
	EventBulkStatusChanged        = "bulk_status_changed"
)

type noopPublisher struct{}

func (noopPublisher) Publish(string, any) {}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error)            { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error     { return nil }
func (noopCache) DeleteByPattern(context.Context, string) error                 { return nil }
func (noopCache) GetBytes(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (noopCache) SetBytes(context.Context, string, []byte, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, string) error                          { return nil }
