package ports

import (
	"context"
)

// VerifiedCredential is what the identity verifier vouches for.
type VerifiedCredential struct {
	ProvisionalAuthID string
	VerifiedPhone     string
}

// SessionClaims are the auxiliary claims bound into a minted session.
type SessionClaims struct {
	Role     string
	Phone    string
	Provider string
}

// IdentityVerifier is the external identity provider: it checks phone
// credentials and issues application sessions.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawCredential string) (VerifiedCredential, error)
	MintSession(ctx context.Context, applicationUserID string, claims SessionClaims) (string, error)
}
