package ports

import (
	"context"
	"time"

	"github.com/akti/portal-api/internal/core/domain"
)

type CoWorkerRepository interface {
	Create(ctx context.Context, cw *domain.CoWorker) (*domain.CoWorker, error)
	FindByID(ctx context.Context, id string) (*domain.CoWorker, error)
	List(ctx context.Context) ([]domain.CoWorker, error)
	Update(ctx context.Context, cw *domain.CoWorker) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type CoWorkerInput struct {
	FullName  string
	CNIC      string
	Reference string
	Purpose   string
}

type CoWorkerService interface {
	Create(ctx context.Context, actor string, input CoWorkerInput) (*domain.CoWorker, error)
	Get(ctx context.Context, id string) (*domain.CoWorker, error)
	List(ctx context.Context) ([]domain.CoWorker, error)
	Update(ctx context.Context, actor, id string, input CoWorkerInput) (*domain.CoWorker, error)
	Delete(ctx context.Context, actor, id string) error
}
