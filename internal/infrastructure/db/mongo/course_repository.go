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

const collectionCourses = "courses"

type courseDoc struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty"`
	CourseName  string                `bson:"courseName"`
	TrainerName string                `bson:"trainerName"`
	Price       float64               `bson:"price"`
	Duration    domain.CourseDuration `bson:"duration"`
	CreatedBy   string                `bson:"createdBy,omitempty"`
	CreatedAt   time.Time             `bson:"createdAt"`
	UpdatedAt   time.Time             `bson:"updatedAt"`
}

func (d *courseDoc) toCourse() *domain.Course {
	return &domain.Course{
		ID:          d.ID.Hex(),
		CourseName:  d.CourseName,
		TrainerName: d.TrainerName,
		Price:       d.Price,
		Duration:    d.Duration,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func courseToDoc(c *domain.Course) *courseDoc {
	return &courseDoc{
		CourseName:  c.CourseName,
		TrainerName: c.TrainerName,
		Price:       c.Price,
		Duration:    c.Duration,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CourseRepository manages the courses collection.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, courseToDoc(course))
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *course
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return doc.toCourse(), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Course
	for cursor.Next(ctx) {
		var doc courseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		out = append(out, *doc.toCourse())
	}
	return out, cursor.Err()
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	oid, err := primitive.ObjectIDFromHex(course.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": courseToDoc(course)})
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}
