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

const collectionCoWorkers = "coworkers"

type coWorkerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FullName  string             `bson:"fullName"`
	CNIC      string             `bson:"cnic"`
	Reference string             `bson:"reference,omitempty"`
	Purpose   string             `bson:"purpose,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *coWorkerDoc) toCoWorker() *domain.CoWorker {
	return &domain.CoWorker{
		ID:        d.ID.Hex(),
		FullName:  d.FullName,
		CNIC:      d.CNIC,
		Reference: d.Reference,
		Purpose:   d.Purpose,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func coWorkerToDoc(cw *domain.CoWorker) *coWorkerDoc {
	return &coWorkerDoc{
		FullName:  cw.FullName,
		CNIC:      cw.CNIC,
		Reference: cw.Reference,
		Purpose:   cw.Purpose,
		CreatedAt: cw.CreatedAt,
		UpdatedAt: cw.UpdatedAt,
	}
}

// CoWorkerRepository manages the coworkers collection.
type CoWorkerRepository struct {
	col *mongo.Collection
}

func NewCoWorkerRepository(db *mongo.Database) *CoWorkerRepository {
	return &CoWorkerRepository{col: db.Collection(collectionCoWorkers)}
}

func (r *CoWorkerRepository) Create(ctx context.Context, cw *domain.CoWorker) (*domain.CoWorker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, coWorkerToDoc(cw))
	if err != nil {
		return nil, fmt.Errorf("insert co-worker: %w", err)
	}

	created := *cw
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CoWorkerRepository) FindByID(ctx context.Context, id string) (*domain.CoWorker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc coWorkerDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCoWorkerNotFound
		}
		return nil, fmt.Errorf("find co-worker: %w", err)
	}
	return doc.toCoWorker(), nil
}

func (r *CoWorkerRepository) List(ctx context.Context) ([]domain.CoWorker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list co-workers: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.CoWorker
	for cursor.Next(ctx) {
		var doc coWorkerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode co-worker: %w", err)
		}
		out = append(out, *doc.toCoWorker())
	}
	return out, cursor.Err()
}

func (r *CoWorkerRepository) Update(ctx context.Context, cw *domain.CoWorker) error {
	oid, err := primitive.ObjectIDFromHex(cw.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": coWorkerToDoc(cw)})
	if err != nil {
		return fmt.Errorf("update co-worker: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCoWorkerNotFound
	}
	return nil
}

func (r *CoWorkerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete co-worker: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCoWorkerNotFound
	}
	return nil
}

func (r *CoWorkerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *CoWorkerRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
}
