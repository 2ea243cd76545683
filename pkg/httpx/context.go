package httpx

import "context"

type ctxKey string

// CtxKeySubject holds the authenticated subject (email, uid, or strategy name).
const CtxKeySubject ctxKey = "subject"

// WithSubject stores the authenticated subject for rate limiting and logging.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, CtxKeySubject, subject)
}

// SubjectFromContext returns the subject stored by WithSubject, if any.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
