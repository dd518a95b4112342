// Package token implements the session token lifecycle: signed,
// time-boxed assertions of identity and role. The signing secret is
// process-wide and read-only after startup; issuance and verification
// are independent per call and safe for concurrent use.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akti/portal-api/internal/core/domain"
)

// ErrInvalid covers every verification failure: missing, malformed,
// badly signed, or expired. Callers must treat all of these the same
// as an absent token.
var ErrInvalid = errors.New("invalid session token")

const DefaultTTL = 24 * time.Hour

// Claims is the signed payload of a session token.
type Claims struct {
	PrincipalID string `json:"id"`
	Username    string `json:"username"`
	IsAdmin     bool   `json:"isAdmin"`
	IsCSR       bool   `json:"isCSR"`
	IsActive    bool   `json:"isActive"`
	IsLeadRole  bool   `json:"isLeadRole"`
	jwt.RegisteredClaims
}

// Issuer signs session tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue builds and signs a token for the given principal. The role
// booleans are derived from the principal's kind; the token carries
// its own 24h validity independent of any cookie lifetime wrapping it.
func (i *Issuer) Issue(p *domain.Principal, now time.Time) (string, *Claims, error) {
	claims := &Claims{
		PrincipalID: p.ID,
		Username:    p.Username,
		IsAdmin:     p.IsAdmin(),
		IsCSR:       p.IsCSR(),
		IsActive:    p.IsActive,
		IsLeadRole:  p.IsLeadRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Verifier validates session tokens against the shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates raw. The signing algorithm is pinned to
// HS256 and expiry is checked by the parser; any failure collapses to
// ErrInvalid so callers cannot distinguish tampering from expiry.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// newTokenID returns a random jti used to key revocations.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
