package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

// WithRequestID attaches a request identifier that Time includes in its
// log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Time logs the duration and outcome of a remote operation. Use it as
//
//	defer obs.Time(ctx, "bing.resolveRoute")(&err)
//
// so the deferred call observes the named return error.
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(requestIDKey).(string)

	return func(errp *error) {
		ms := time.Since(start).Milliseconds()
		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, op, ms, *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, op, ms)
	}
}
