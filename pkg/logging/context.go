package logging

import "context"

type contextKey int

const (
	runIDKey contextKey = iota
	methodKey
)

// WithRunID attaches a run identifier to the context so that every log
// entry emitted while composing that run carries it.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID extracts the run identifier from the context.
func GetRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// WithMethod attaches the engine method name to the context.
func WithMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, methodKey, method)
}

// GetMethod extracts the engine method name from the context.
func GetMethod(ctx context.Context) (string, bool) {
	m, ok := ctx.Value(methodKey).(string)
	return m, ok
}
