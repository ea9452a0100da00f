package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// logRequest emits one line per completed operation with request id,
// status and duration.
func logRequest(r *http.Request, op string, status int, dur time.Duration, err error) {
	if zlog != nil {
		z := zlog.Info().Str("op", op).Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("request end")
		return
	}
	if err != nil {
		log.Printf("%s end status=%d dur=%s err=%v", op, status, dur, err)
		return
	}
	log.Printf("%s end status=%d dur=%s", op, status, dur)
}

func logEncodeFailure(err error) {
	if zlog != nil {
		zlog.Error().Err(err).Msg("failed to encode response")
		return
	}
	log.Printf("failed to encode response: %v", err)
}
