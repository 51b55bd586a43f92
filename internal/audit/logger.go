package audit

//go:generate mockgen -source=./logger.go -destination=../mocks/mock_audit_logger.go -package=mocks Logger

import (
	"context"

	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
)

// Decision describes one access decision worth keeping.
type Decision struct {
	Action     string
	Allowed    bool
	Kind       model.ResourceKind
	ResourceID string
	Actor      policy.Principal
	TargetID   string
	Reason     string
	Context    map[string]interface{}
}

// Logger defines the interface for auditing access decisions
type Logger interface {
	// LogAccessDecision records a decision. Callers treat failures as
	// non-fatal.
	LogAccessDecision(ctx context.Context, decision Decision) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogAccessDecision implements Logger.LogAccessDecision
func (l *NoOpLogger) LogAccessDecision(ctx context.Context, decision Decision) error {
	return nil
}

// RequestMeta is the request information stamped onto audit entries.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

type requestMetaKey struct{}

// WithRequestMeta returns a context carrying meta.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFrom returns the meta stored by WithRequestMeta, or the zero
// value for background work.
func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
