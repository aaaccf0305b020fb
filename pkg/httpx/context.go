package httpx

import "context"

type ctxKey string

const (
	// CtxKeyCallerID carries the resolved numeric user id of the caller.
	CtxKeyCallerID ctxKey = "caller_id"
)

// WithCallerID attaches the resolved caller user id to the context.
func WithCallerID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, CtxKeyCallerID, userID)
}

// CallerID returns the caller user id from the context, if present.
func CallerID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(CtxKeyCallerID).(int64)
	return v, ok
}
