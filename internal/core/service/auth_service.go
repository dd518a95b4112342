package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
	"github.com/akti/portal-api/internal/core/token"
)

const (
	RedirectAdmin = "/admin/dashboard"
	RedirectCSR   = "/csr/csr-dashboard"
)

// AuthService turns a username/password pair into a session token.
//
// Lookup order is admins first, then CSRs; on a username collision the
// admin record wins. Login failures are field-tagged (username vs
// password), matching the portal's wire contract. That tagging is a
// user-enumeration leak accepted for compatibility. An inactive CSR
// still authenticates; isActive rides in the claims without gating.
type AuthService struct {
	principals ports.PrincipalRepository
	issuer     *token.Issuer
	verifier   *token.Verifier
	revocation ports.TokenRevocations
	audit      ports.AuditRecorder
	logger     zerolog.Logger
}

func NewAuthService(
	principals ports.PrincipalRepository,
	issuer *token.Issuer,
	verifier *token.Verifier,
	revocation ports.TokenRevocations,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		principals: principals,
		issuer:     issuer,
		verifier:   verifier,
		revocation: revocation,
		audit:      audit,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	principal, err := s.principals.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			s.record(domain.AuditEvent{Actor: username, Action: domain.AuditLoginFailed})
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		s.record(domain.AuditEvent{Actor: username, Action: domain.AuditLoginFailed})
		return nil, domain.ErrInvalidCredentials
	}

	signed, _, err := s.issuer.Issue(principal, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	redirect := RedirectCSR
	if principal.IsAdmin() {
		redirect = RedirectAdmin
	}

	s.logger.Info().
		Str("username", principal.Username).
		Str("kind", string(principal.Kind)).
		Msg("login succeeded")
	s.record(domain.AuditEvent{Actor: principal.Username, Action: domain.AuditLoginSucceeded})

	return &ports.LoginResult{
		Token:       signed,
		PrincipalID: principal.ID,
		Redirect:    redirect,
		IsAdmin:     principal.IsAdmin(),
		IsCSR:       principal.IsCSR(),
	}, nil
}

// Logout denylists the token's jti for its remaining lifetime when a
// revocation store is configured. Without one, logout is purely the
// cookie overwrite performed by the handler, and any captured bearer
// copy stays valid until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, rawToken string) {
	if rawToken == "" {
		return
	}

	claims, err := s.verifier.Verify(rawToken)
	if err != nil {
		return
	}
	s.record(domain.AuditEvent{Actor: claims.Username, Action: domain.AuditLogout})

	if s.revocation == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return
	}
	if err := s.revocation.Revoke(ctx, claims.ID, remaining); err != nil {
		s.logger.Warn().Err(err).Str("username", claims.Username).Msg("token revocation failed")
	}
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Record(event)
}
