package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/akti/portal-api/internal/core/domain"
)

const (
	collectionAdmins = "admins"
	collectionCSRs   = "csrs"
)

// principalDoc is the shared document shape of the admins and csrs
// collections. Field names match the historical portal schema.
type principalDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"fullName"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
	Email        string             `bson:"email"`
	IsActive     *bool              `bson:"isActive,omitempty"`
	IsLeadRole   bool               `bson:"isLeadRole,omitempty"`
	IsCSR        bool               `bson:"isCSR"`
	IsAdmin      bool               `bson:"isAdmin"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// toPrincipal maps a document to the tagged domain variant. kind comes
// from the collection the document was loaded from; the stored role
// booleans are legacy data and never decide the variant.
func (d *principalDoc) toPrincipal(kind domain.PrincipalKind) *domain.Principal {
	active := true
	if kind == domain.KindCSR && d.IsActive != nil {
		active = *d.IsActive
	}
	return &domain.Principal{
		ID:           d.ID.Hex(),
		Kind:         kind,
		FullName:     d.FullName,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     active,
		IsLeadRole:   d.IsLeadRole,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// PrincipalRepository performs the union login lookup over both
// credential collections.
type PrincipalRepository struct {
	admins *mongo.Collection
	csrs   *mongo.Collection
}

func NewPrincipalRepository(db *mongo.Database) *PrincipalRepository {
	return &PrincipalRepository{
		admins: db.Collection(collectionAdmins),
		csrs:   db.Collection(collectionCSRs),
	}
}

// FindByUsername searches admins before csrs; on a username collision
// across the two collections the admin record wins. Intentional.
func (r *PrincipalRepository) FindByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc principalDoc
	err := r.admins.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == nil {
		return doc.toPrincipal(domain.KindAdmin), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	err = r.csrs.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err == nil {
		return doc.toPrincipal(domain.KindCSR), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find csr: %w", err)
	}
	return nil, domain.ErrPrincipalNotFound
}
