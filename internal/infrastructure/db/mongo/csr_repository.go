package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akti/portal-api/internal/core/domain"
)

// CSRRepository manages the csrs collection.
type CSRRepository struct {
	col *mongo.Collection
}

func NewCSRRepository(db *mongo.Database) *CSRRepository {
	return &CSRRepository{col: db.Collection(collectionCSRs)}
}

func csrToDoc(p *domain.Principal) *principalDoc {
	active := p.IsActive
	return &principalDoc{
		FullName:     p.FullName,
		Username:     p.Username,
		PasswordHash: p.PasswordHash,
		Email:        p.Email,
		IsActive:     &active,
		IsLeadRole:   p.IsLeadRole,
		IsCSR:        true,
		IsAdmin:      false,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *CSRRepository) Create(ctx context.Context, csr *domain.Principal) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, csrToDoc(csr))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert csr: %w", err)
	}

	created := *csr
	created.Kind = domain.KindCSR
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CSRRepository) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc principalDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCSRNotFound
		}
		return nil, fmt.Errorf("find csr: %w", err)
	}
	return doc.toPrincipal(domain.KindCSR), nil
}

// FindTaken looks for an existing CSR holding either the username or
// the email, excluding excludeID when non-empty. Returns (nil, nil)
// when both are free.
func (r *CSRRepository) FindTaken(ctx context.Context, username, email, excludeID string) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}}}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	var doc principalDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find taken csr: %w", err)
	}
	return doc.toPrincipal(domain.KindCSR), nil
}

func (r *CSRRepository) List(ctx context.Context) ([]domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list csrs: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Principal
	for cursor.Next(ctx) {
		var doc principalDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode csr: %w", err)
		}
		out = append(out, *doc.toPrincipal(domain.KindCSR))
	}
	return out, cursor.Err()
}

func (r *CSRRepository) Update(ctx context.Context, csr *domain.Principal) error {
	oid, err := primitive.ObjectIDFromHex(csr.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": csrToDoc(csr)})
	if err != nil {
		return fmt.Errorf("update csr: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCSRNotFound
	}
	return nil
}

func (r *CSRRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete csr: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCSRNotFound
	}
	return nil
}

func (r *CSRRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *CSRRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"isActive": true})
}

func (r *CSRRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
}

// EnsureIndexes creates the uniqueness and reporting indexes for the
// csrs collection.
func (r *CSRRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
