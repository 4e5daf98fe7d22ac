package domain

import "time"

// AuditAction identifies what happened to an account.
type AuditAction string

const (
	AuditRegistered AuditAction = "registered"
	AuditLoggedIn   AuditAction = "logged_in"
	AuditUpdated    AuditAction = "updated"
	AuditDeleted    AuditAction = "deleted"
)

// AuditEvent records a single account-level action for the audit trail.
// Actor is the id of the authenticated caller; for self-service actions
// it equals AccountID.
type AuditEvent struct {
	AccountID string      `bson:"account_id"`
	Actor     string      `bson:"actor"`
	Action    AuditAction `bson:"action"`
	Timestamp time.Time   `bson:"timestamp"`
}
