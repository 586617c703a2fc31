package jwt

import (
	"errors"
	"testing"
	"time"

	"talent-hub/internal/domain/identity"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	who := identity.Identity{UserID: uuid.New(), Email: "HR@Example.com", Role: identity.RoleHR}

	tok, err := svc.GenerateAccessToken(who)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.UserID != who.UserID || got.Role != identity.RoleHR || got.Email != "hr@example.com" {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestHMACService_Rejects(t *testing.T) {
	who := identity.Identity{UserID: uuid.New(), Email: "a@example.com", Role: identity.RoleJobSeeker}

	other := NewHMACService("other", time.Minute)
	foreign, _ := other.GenerateAccessToken(who)

	svc := NewHMACService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _ := svc.GenerateAccessToken(who)
	svc.now = time.Now

	badRole, _ := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		Email: "a@example.com",
		Role:  "superuser",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   who.UserID.String(),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"wrong secret", foreign, ErrTokenInvalid},
		{"expired", expired, ErrTokenExpired},
		{"unknown role", badRole, ErrTokenInvalid},
		{"garbage", "not-a-token", ErrTokenInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
