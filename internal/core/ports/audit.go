package ports

import (
	"context"

	"github.com/akti/portal-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence.
// Record must not block the request path beyond queueing.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
