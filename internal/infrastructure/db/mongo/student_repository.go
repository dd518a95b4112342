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

const collectionStudents = "students"

type studentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	GuardianName string             `bson:"guardianName"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	CreatedBy    string             `bson:"createdBy,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *studentDoc) toStudent() *domain.Student {
	return &domain.Student{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		GuardianName: d.GuardianName,
		Email:        d.Email,
		Phone:        d.Phone,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func studentToDoc(s *domain.Student) *studentDoc {
	return &studentDoc{
		Name:         s.Name,
		GuardianName: s.GuardianName,
		Email:        s.Email,
		Phone:        s.Phone,
		CreatedBy:    s.CreatedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// StudentRepository manages the students collection.
type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(collectionStudents)}
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, studentToDoc(student))
	if err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}

	created := *student
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc studentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return doc.toStudent(), nil
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Student
	for cursor.Next(ctx) {
		var doc studentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode student: %w", err)
		}
		out = append(out, *doc.toStudent())
	}
	return out, cursor.Err()
}

func (r *StudentRepository) Update(ctx context.Context, student *domain.Student) error {
	oid, err := primitive.ObjectIDFromHex(student.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": studentToDoc(student)})
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *StudentRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
}
