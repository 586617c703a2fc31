package jwt

import (
	"errors"
	"time"

	"talent-hub/internal/domain/identity"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeAccess = "access"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the access token payload shared with the identity provider. The
// subject is the user id.
type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type,omitempty"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(who identity.Identity) (string, error)
	ValidateToken(tokenString string) (identity.Identity, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return &HMACService{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
}

// GenerateAccessToken signs a token the way the identity provider does. The
// service itself only verifies tokens; this is used by tooling and tests.
func (s *HMACService) GenerateAccessToken(who identity.Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()
	c := Claims{
		Email:     who.Email,
		Role:      string(who.Role),
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   who.UserID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
}

// ValidateToken verifies an HS256 access token and returns the caller it
// names. Tokens without an email or a known role are rejected.
func (s *HMACService) ValidateToken(tokenString string) (identity.Identity, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return identity.Identity{}, ErrTokenExpired
		}
		return identity.Identity{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return identity.Identity{}, ErrTokenInvalid
	}
	if c.TokenType != "" && c.TokenType != TokenTypeAccess {
		return identity.Identity{}, ErrTokenInvalid
	}

	role, ok := identity.ParseRole(c.Role)
	if !ok {
		return identity.Identity{}, ErrTokenInvalid
	}
	email := identity.NormalizeEmail(c.Email)
	if email == "" {
		return identity.Identity{}, ErrTokenInvalid
	}
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return identity.Identity{}, ErrTokenInvalid
	}
	return identity.Identity{UserID: userID, Email: email, Role: role}, nil
}
