package domain

import (
	"errors"
	"time"
)

// PrincipalKind identifies which credential collection a principal
// belongs to. Role is a type-level fact: it is decided by the
// collection the record was loaded from, never inferred from which
// optional fields happen to be set.
type PrincipalKind string

const (
	KindAdmin PrincipalKind = "admin"
	KindCSR   PrincipalKind = "csr"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrCSRNotFound        = errors.New("csr not found")
	ErrInvalidID          = errors.New("invalid identifier")
)

// Principal is a user able to authenticate: an Admin or a CSR.
// Usernames are unique across the union of both kinds; login looks up
// by username without knowing the kind in advance.
type Principal struct {
	ID           string        `json:"id"`
	Kind         PrincipalKind `json:"-"`
	FullName     string        `json:"fullName"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	// IsActive and IsLeadRole are CSR attributes. Admins report
	// IsActive=true. An inactive CSR can still authenticate; the flag
	// rides in the session claims but does not gate login.
	IsActive   bool      `json:"isActive"`
	IsLeadRole bool      `json:"isLeadRole"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (p *Principal) IsAdmin() bool { return p.Kind == KindAdmin }

func (p *Principal) IsCSR() bool { return p.Kind == KindCSR }
