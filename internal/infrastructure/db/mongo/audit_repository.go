package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/akti/portal-api/internal/core/domain"
)

const collectionAuditEvents = "audit_events"

type auditEventDoc struct {
	Actor     string    `bson:"actor"`
	Action    string    `bson:"action"`
	Entity    string    `bson:"entity,omitempty"`
	EntityID  string    `bson:"entityId,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

// AuditRepository persists audit events to the audit_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditEventDoc{
		Actor:     event.Actor,
		Action:    event.Action,
		Entity:    event.Entity,
		EntityID:  event.EntityID,
		Timestamp: event.Timestamp,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
