package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// CoWorkerService manages co-worker records on behalf of CSRs.
type CoWorkerService struct {
	repo   ports.CoWorkerRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewCoWorkerService(repo ports.CoWorkerRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CoWorkerService {
	return &CoWorkerService{repo: repo, audit: audit, logger: logger}
}

func (s *CoWorkerService) Create(ctx context.Context, actor string, input ports.CoWorkerInput) (*domain.CoWorker, error) {
	now := time.Now().UTC()
	cw := &domain.CoWorker{
		FullName:  input.FullName,
		CNIC:      input.CNIC,
		Reference: input.Reference,
		Purpose:   input.Purpose,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, cw)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("coworker", created.FullName).Str("actor", actor).Msg("co-worker created")
	s.record(actor, domain.AuditCreated, created.ID)
	return created, nil
}

func (s *CoWorkerService) Get(ctx context.Context, id string) (*domain.CoWorker, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CoWorkerService) List(ctx context.Context) ([]domain.CoWorker, error) {
	return s.repo.List(ctx)
}

func (s *CoWorkerService) Update(ctx context.Context, actor, id string, input ports.CoWorkerInput) (*domain.CoWorker, error) {
	cw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cw.FullName = input.FullName
	cw.CNIC = input.CNIC
	cw.Reference = input.Reference
	cw.Purpose = input.Purpose
	cw.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, cw); err != nil {
		return nil, err
	}
	s.record(actor, domain.AuditUpdated, cw.ID)
	return cw, nil
}

func (s *CoWorkerService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actor, domain.AuditDeleted, id)
	return nil
}

func (s *CoWorkerService) record(actor, action, id string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Entity:    "coworker",
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	})
}
