package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

type stubCSRRepo struct {
	byID   map[string]*domain.Principal
	nextID int
}

func newStubCSRRepo() *stubCSRRepo {
	return &stubCSRRepo{byID: make(map[string]*domain.Principal)}
}

func (r *stubCSRRepo) Create(_ context.Context, csr *domain.Principal) (*domain.Principal, error) {
	r.nextID++
	clone := *csr
	clone.ID = "csr-" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCSRRepo) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCSRNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubCSRRepo) FindTaken(_ context.Context, username, email, excludeID string) (*domain.Principal, error) {
	for id, p := range r.byID {
		if id == excludeID {
			continue
		}
		if p.Username == username || p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubCSRRepo) List(_ context.Context) ([]domain.Principal, error) {
	out := make([]domain.Principal, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubCSRRepo) Update(_ context.Context, csr *domain.Principal) error {
	if _, ok := r.byID[csr.ID]; !ok {
		return domain.ErrCSRNotFound
	}
	clone := *csr
	r.byID[csr.ID] = &clone
	return nil
}

func (r *stubCSRRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCSRNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCSRRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubCSRRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *stubCSRRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func TestCSRService_Create(t *testing.T) {
	repo := newStubCSRRepo()
	svc := NewCSRService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "rahul12345", ports.CreateCSRInput{
		FullName: "Sana Khan",
		Username: "sana.khan",
		Email:    "sana@example.com",
		Password: "pw12345",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Kind != domain.KindCSR {
		t.Fatalf("expected csr kind, got %s", created.Kind)
	}
	if !created.IsActive {
		t.Fatalf("new csr should default to active")
	}
	if created.PasswordHash == "pw12345" {
		t.Fatalf("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pw12345")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCSRService_Create_DuplicateUsername(t *testing.T) {
	repo := newStubCSRRepo()
	svc := NewCSRService(repo, nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "admin", ports.CreateCSRInput{
		FullName: "A", Username: "dup", Email: "a@example.com", Password: "pw",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "admin", ports.CreateCSRInput{
		FullName: "B", Username: "dup", Email: "b@example.com", Password: "pw",
	}); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "admin", ports.CreateCSRInput{
		FullName: "C", Username: "other", Email: "a@example.com", Password: "pw",
	}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCSRService_Update_Partial(t *testing.T) {
	repo := newStubCSRRepo()
	svc := NewCSRService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), "admin", ports.CreateCSRInput{
		FullName: "Sana Khan", Username: "sana.khan", Email: "sana@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	lead := true
	updated, err := svc.Update(context.Background(), "admin", created.ID, ports.UpdateCSRInput{
		IsActive:   &inactive,
		IsLeadRole: &lead,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive || !updated.IsLeadRole {
		t.Fatalf("flags not applied: %+v", updated)
	}
	if updated.Username != "sana.khan" || updated.FullName != "Sana Khan" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCSRService_Update_RehashesPassword(t *testing.T) {
	repo := newStubCSRRepo()
	svc := NewCSRService(repo, nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), "admin", ports.CreateCSRInput{
		FullName: "S", Username: "s", Email: "s@example.com", Password: "old",
	})

	newPassword := "brand-new"
	updated, err := svc.Update(context.Background(), "admin", created.ID, ports.UpdateCSRInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brand-new")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

func TestCSRService_Delete(t *testing.T) {
	repo := newStubCSRRepo()
	svc := NewCSRService(repo, nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), "admin", ports.CreateCSRInput{
		FullName: "S", Username: "s", Email: "s@example.com", Password: "pw",
	})
	if err := svc.Delete(context.Background(), "admin", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "admin", created.ID); err != domain.ErrCSRNotFound {
		t.Fatalf("expected ErrCSRNotFound on second delete, got %v", err)
	}
}
