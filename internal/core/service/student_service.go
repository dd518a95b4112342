package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// StudentService manages student records on behalf of CSRs.
type StudentService struct {
	repo   ports.StudentRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, audit ports.AuditRecorder, logger zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, audit: audit, logger: logger}
}

func (s *StudentService) Create(ctx context.Context, actor string, input ports.StudentInput) (*domain.Student, error) {
	now := time.Now().UTC()
	student := &domain.Student{
		Name:         input.Name,
		GuardianName: input.GuardianName,
		Email:        input.Email,
		Phone:        input.Phone,
		CreatedBy:    actor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("student", created.Name).Str("actor", actor).Msg("student created")
	s.record(actor, domain.AuditCreated, created.ID)
	return created, nil
}

func (s *StudentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StudentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.repo.List(ctx)
}

func (s *StudentService) Update(ctx context.Context, actor, id string, input ports.StudentInput) (*domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = input.Name
	student.GuardianName = input.GuardianName
	student.Email = input.Email
	student.Phone = input.Phone
	student.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	s.record(actor, domain.AuditUpdated, student.ID)
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, domain.AuditDeleted, id)
	return nil
}

func (s *StudentService) record(actor, action, id string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Entity:    "student",
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	})
}
