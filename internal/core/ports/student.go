package ports

import (
	"context"
	"time"

	"github.com/akti/portal-api/internal/core/domain"
)

type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	FindByID(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type StudentInput struct {
	Name         string
	GuardianName string
	Email        string
	Phone        string
}

type StudentService interface {
	Create(ctx context.Context, actor string, input StudentInput) (*domain.Student, error)
	Get(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, actor, id string, input StudentInput) (*domain.Student, error)
	Delete(ctx context.Context, actor, id string) error
}
