package obs

import (
	"context"
	"log"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

// RequestIDKey may carry a request id for work started outside an HTTP
// request (e.g. background jobs). HTTP requests use chi's request id.
const RequestIDKey ctxKey = "req_id"

// RequestID returns the id attached to ctx, or "" when there is none.
func RequestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of an operation. Use as
//
//	defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
