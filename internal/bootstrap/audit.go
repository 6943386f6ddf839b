package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational lifecycle events (startup, shutdown).
// Request-level auditing goes through the structured request logger
// instead.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
