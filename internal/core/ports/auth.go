package ports

import (
	"context"
	"time"

	"github.com/akti/portal-api/internal/core/domain"
)

// PrincipalRepository resolves login usernames against the credential
// store. Implementations search the admin collection before the CSR
// collection: on a username collision across the two, the Admin record
// wins. That ordering is intentional.
type PrincipalRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Principal, error)
}

// LoginResult is what a successful authentication hands back to the
// transport layer: the raw token plus everything the client caches.
type LoginResult struct {
	Token       string
	PrincipalID string
	Redirect    string
	IsAdmin     bool
	IsCSR       bool
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout revokes the token when a revocation store is wired and is
	// otherwise a no-op. It never fails the request.
	Logout(ctx context.Context, rawToken string)
}

// TokenRevocations is the optional denylist consulted by the session
// gate. Entries expire with the remaining token lifetime.
type TokenRevocations interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
