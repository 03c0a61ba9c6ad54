// Package identity implements ports.IdentityVerifier with HMAC-signed JWTs.
//
// Phone credentials are ID tokens issued by the phone verification provider
// with the shared verifier secret. They carry the provisional auth id in sub
// and the verified number in phone_number. Sessions are minted and checked
// here with the session secret.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CredentialAudience = "phone-verification"
	SessionAudience    = "storefront-session"
	SessionIssuer      = "storefront"
)

var (
	ErrInvalidCredential = errors.New("phone credential is invalid")
	ErrInvalidSession    = errors.New("session is invalid")
)

type credentialClaims struct {
	PhoneNumber string `json:"phone_number"`
	jwt.RegisteredClaims
}

type sessionClaims struct {
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// Session is a parsed and verified session token.
type Session struct {
	Subject   string
	Role      string
	Phone     string
	Provider  string
	ExpiresAt time.Time
}

type JWTVerifier struct {
	verifierSecret []byte
	sessionSecret  []byte
	sessionTTL     time.Duration
	now            func() time.Time
}

func NewJWTVerifier(verifierSecret, sessionSecret string, sessionTTL time.Duration) (*JWTVerifier, error) {
	if verifierSecret == "" {
		return nil, errors.New("identity verifier secret is required")
	}
	if sessionSecret == "" {
		return nil, errors.New("session secret is required")
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl %s is not positive", sessionTTL)
	}

	return &JWTVerifier{
		verifierSecret: []byte(verifierSecret),
		sessionSecret:  []byte(sessionSecret),
		sessionTTL:     sessionTTL,
		now:            time.Now,
	}, nil
}

// WithClock returns a copy of v reading time from now.
func (v *JWTVerifier) WithClock(now func() time.Time) *JWTVerifier {
	c := *v
	c.now = now
	return &c
}

// Verify checks a phone credential and returns what it vouches for.
func (v *JWTVerifier) Verify(_ context.Context, rawCredential string) (ports.VerifiedCredential, error) {
	var claims credentialClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(rawCredential), &claims, v.keyFunc(v.verifierSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(CredentialAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return ports.VerifiedCredential{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	if claims.Subject == "" || claims.PhoneNumber == "" {
		return ports.VerifiedCredential{}, fmt.Errorf("%w: sub and phone_number are required", ErrInvalidCredential)
	}

	return ports.VerifiedCredential{
		ProvisionalAuthID: claims.Subject,
		VerifiedPhone:     claims.PhoneNumber,
	}, nil
}

// MintSession signs a session for applicationUserID valid for the session TTL.
func (v *JWTVerifier) MintSession(_ context.Context, applicationUserID string, claims ports.SessionClaims) (string, error) {
	if applicationUserID == "" {
		return "", errors.New("application user id is required")
	}

	now := v.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Role:     claims.Role,
		Phone:    claims.Phone,
		Provider: claims.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   applicationUserID,
			Issuer:    SessionIssuer,
			Audience:  jwt.ClaimStrings{SessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.sessionTTL)),
		},
	})

	return token.SignedString(v.sessionSecret)
}

// ParseSession verifies a session token minted by MintSession.
func (v *JWTVerifier) ParseSession(raw string) (Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, v.keyFunc(v.sessionSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(SessionAudience),
		jwt.WithIssuer(SessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	if claims.Subject == "" {
		return Session{}, fmt.Errorf("%w: sub is required", ErrInvalidSession)
	}

	return Session{
		Subject:   claims.Subject,
		Role:      claims.Role,
		Phone:     claims.Phone,
		Provider:  claims.Provider,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// IssueCredential signs a phone credential the way the verification provider
// does. Used by local tooling and tests.
func (v *JWTVerifier) IssueCredential(authID, phone string, ttl time.Duration) (string, error) {
	now := v.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, credentialClaims{
		PhoneNumber: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authID,
			Audience:  jwt.ClaimStrings{CredentialAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(v.verifierSecret)
}

func (v *JWTVerifier) keyFunc(secret []byte) jwt.Keyfunc {
	return func(*jwt.Token) (any, error) {
		return secret, nil
	}
}
