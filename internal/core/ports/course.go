package ports

import (
	"context"

	"github.com/akti/portal-api/internal/core/domain"
)

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// List returns courses newest first.
	List(ctx context.Context) ([]domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CourseInput struct {
	CourseName  string
	TrainerName string
	Price       float64
	Duration    domain.CourseDuration
}

type CourseService interface {
	Create(ctx context.Context, actor string, input CourseInput) (*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Update(ctx context.Context, actor, id string, input CourseInput) (*domain.Course, error)
	Delete(ctx context.Context, actor, id string) error
}
