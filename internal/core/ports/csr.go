package ports

import (
	"context"
	"time"

	"github.com/akti/portal-api/internal/core/domain"
)

// CSRRepository persists CSR principals in their own collection.
type CSRRepository interface {
	Create(ctx context.Context, csr *domain.Principal) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	// FindTaken reports an existing CSR holding the given username or
	// email, excluding excludeID when non-empty.
	FindTaken(ctx context.Context, username, email, excludeID string) (*domain.Principal, error)
	List(ctx context.Context) ([]domain.Principal, error)
	Update(ctx context.Context, csr *domain.Principal) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type CreateCSRInput struct {
	FullName   string
	Username   string
	Email      string
	Password   string
	IsActive   *bool
	IsLeadRole bool
}

// UpdateCSRInput carries a partial update; nil fields are left as-is.
type UpdateCSRInput struct {
	FullName   *string
	Username   *string
	Email      *string
	Password   *string
	IsActive   *bool
	IsLeadRole *bool
}

type CSRService interface {
	Create(ctx context.Context, actor string, input CreateCSRInput) (*domain.Principal, error)
	Get(ctx context.Context, id string) (*domain.Principal, error)
	List(ctx context.Context) ([]domain.Principal, error)
	Update(ctx context.Context, actor, id string, input UpdateCSRInput) (*domain.Principal, error)
	Delete(ctx context.Context, actor, id string) error
}
