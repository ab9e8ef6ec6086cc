package bootstrap

import "context"

// AuditLog is a single operational audit entry (startup, shutdown,
// worker lifecycle). Domain-level history lives in the database, not
// here.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
