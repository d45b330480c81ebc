package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
)

// TokenKind distinguishes access tokens from refresh tokens. It travels in
// the "typ" claim and a token is only accepted for the kind it was issued as.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// DefaultAccessTTL is used when no access token lifetime is configured.
const DefaultAccessTTL = 15 * time.Minute

// DefaultRefreshTTL is the refresh token lifetime.
const DefaultRefreshTTL = 7 * 24 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	Kind TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-signed tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService. algorithm must be one of HS256,
// HS384 or HS512. Non-positive TTLs fall back to the defaults.
func NewTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of s that reads the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// Issue signs a token for subject that expires ttl from now. A ttl of zero
// or less yields a token that is already expired.
func (s *TokenService) Issue(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// IssueAccess signs an access token with the configured lifetime.
func (s *TokenService) IssueAccess(subject string) (string, error) {
	return s.Issue(subject, AccessToken, s.accessTTL)
}

// IssueRefresh signs a refresh token with the refresh lifetime.
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.Issue(subject, RefreshToken, s.refreshTTL)
}

// IssuePair signs a fresh access and refresh token for subject.
func (s *TokenService) IssuePair(subject string) (models.TokenPair, error) {
	access, err := s.IssueAccess(subject)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.IssueRefresh(subject)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Validate checks signature, algorithm, expiry and kind and returns the
// subject. It fails with common.ErrExpiredToken once the expiry has passed
// and with common.ErrMalformedToken for everything else.
func (s *TokenService) Validate(tokenStr string, kind TokenKind) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrMalformedToken)
	}
	if claims.Kind != kind {
		return "", fmt.Errorf("%w: expected %s token, got %q", common.ErrMalformedToken, kind, claims.Kind)
	}
	return claims.Subject, nil
}
