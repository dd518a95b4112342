package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// CourseService manages the course catalogue.
type CourseService struct {
	repo   ports.CourseRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, audit: audit, logger: logger}
}

func (s *CourseService) Create(ctx context.Context, actor string, input ports.CourseInput) (*domain.Course, error) {
	now := time.Now().UTC()
	course := &domain.Course{
		CourseName:  input.CourseName,
		TrainerName: input.TrainerName,
		Price:       input.Price,
		Duration:    input.Duration,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course", created.CourseName).Str("actor", actor).Msg("course created")
	s.record(actor, domain.AuditCreated, created.ID)
	return created, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.repo.List(ctx)
}

func (s *CourseService) Update(ctx context.Context, actor, id string, input ports.CourseInput) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.CourseName = input.CourseName
	course.TrainerName = input.TrainerName
	course.Price = input.Price
	course.Duration = input.Duration
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.record(actor, domain.AuditUpdated, course.ID)
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, domain.AuditDeleted, id)
	return nil
}

func (s *CourseService) record(actor, action, id string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Entity:    "course",
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	})
}
