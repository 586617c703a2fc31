package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDrafts_RoundTrip(t *testing.T) {
	uc := NewDraftUsecase(newMemStore(), time.Hour, nil)
	ctx := context.Background()
	jobID := uuid.New()

	if _, ok, err := uc.Get(ctx, seekerUser, jobID); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := uc.Save(ctx, seekerUser, jobID, json.RawMessage(`{"cover_letter":"hi"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := uc.Get(ctx, seekerUser, jobID)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != `{"cover_letter":"hi"}` {
		t.Fatalf("unexpected draft %s", got)
	}
	if err := uc.Delete(ctx, seekerUser, jobID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := uc.Get(ctx, seekerUser, jobID); ok {
		t.Fatalf("expected draft gone")
	}
}

func TestDrafts_Rejections(t *testing.T) {
	uc := NewDraftUsecase(newMemStore(), time.Hour, nil)
	ctx := context.Background()
	jobID := uuid.New()

	big := json.RawMessage(`"` + strings.Repeat("x", MaxDraftBytes) + `"`)
	if err := uc.Save(ctx, seekerUser, jobID, big); !errors.Is(err, ErrDraftTooLarge) {
		t.Fatalf("expected ErrDraftTooLarge, got %v", err)
	}
	if err := uc.Save(ctx, seekerUser, jobID, json.RawMessage(`{not json`)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := uc.Save(ctx, hrUser, jobID, json.RawMessage(`{}`)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDrafts_StoreUnavailableIsSilent(t *testing.T) {
	uc := NewDraftUsecase(nil, time.Hour, nil)
	ctx := context.Background()
	jobID := uuid.New()

	if err := uc.Save(ctx, seekerUser, jobID, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("expected silent save, got %v", err)
	}
	if _, ok, err := uc.Get(ctx, seekerUser, jobID); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}
