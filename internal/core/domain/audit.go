package domain

import "time"

// Audit actions recorded by the portal.
const (
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
	AuditLogout         = "logout"
	AuditCreated        = "created"
	AuditUpdated        = "updated"
	AuditDeleted        = "deleted"
)

// AuditEvent records a single administrative action for the trail.
// Actor is the acting principal's username, or the attempted username
// for failed logins.
type AuditEvent struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity,omitempty"`
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
