package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

// bcryptCost matches the cost the portal has always hashed with.
const bcryptCost = 10

// CSRService manages customer-support representative accounts.
type CSRService struct {
	repo   ports.CSRRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewCSRService(repo ports.CSRRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CSRService {
	return &CSRService{repo: repo, audit: audit, logger: logger}
}

func (s *CSRService) Create(ctx context.Context, actor string, input ports.CreateCSRInput) (*domain.Principal, error) {
	if taken, err := s.repo.FindTaken(ctx, input.Username, input.Email, ""); err == nil && taken != nil {
		if taken.Username == input.Username {
			return nil, domain.ErrUsernameTaken
		}
		return nil, domain.ErrEmailTaken
	} else if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	csr := &domain.Principal{
		Kind:         domain.KindCSR,
		FullName:     input.FullName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsActive:     active,
		IsLeadRole:   input.IsLeadRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, csr)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("actor", actor).Msg("csr created")
	s.record(actor, domain.AuditCreated, created.ID)
	return created, nil
}

func (s *CSRService) Get(ctx context.Context, id string) (*domain.Principal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CSRService) List(ctx context.Context) ([]domain.Principal, error) {
	return s.repo.List(ctx)
}

func (s *CSRService) Update(ctx context.Context, actor, id string, input ports.UpdateCSRInput) (*domain.Principal, error) {
	csr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := csr.Username
	if input.Username != nil {
		username = *input.Username
	}
	email := csr.Email
	if input.Email != nil {
		email = *input.Email
	}
	if username != csr.Username || email != csr.Email {
		if taken, err := s.repo.FindTaken(ctx, username, email, id); err != nil {
			return nil, err
		} else if taken != nil {
			if taken.Username == username {
				return nil, domain.ErrUsernameTaken
			}
			return nil, domain.ErrEmailTaken
		}
	}

	csr.Username = username
	csr.Email = email
	if input.FullName != nil {
		csr.FullName = *input.FullName
	}
	if input.IsActive != nil {
		csr.IsActive = *input.IsActive
	}
	if input.IsLeadRole != nil {
		csr.IsLeadRole = *input.IsLeadRole
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		csr.PasswordHash = string(hash)
	}
	csr.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, csr); err != nil {
		return nil, err
	}

	s.record(actor, domain.AuditUpdated, csr.ID)
	return csr, nil
}

func (s *CSRService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("csr_id", id).Str("actor", actor).Msg("csr deleted")
	s.record(actor, domain.AuditDeleted, id)
	return nil
}

func (s *CSRService) record(actor, action, id string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Entity:    "csr",
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	})
}
