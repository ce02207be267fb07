package restserver

import (
	"context"
	"net/http"
	"time"

	"github.com/chrissnell/wxcharts/internal/log"
	"github.com/google/uuid"
)

type contextKey string

const errorHolderKey contextKey = "error-holder"

// errorHolder lets a handler hand the error it answered with back to the
// logging middleware.
type errorHolder struct {
	err error
}

func setError(req *http.Request, err error) {
	if h, ok := req.Context().Value(errorHolderKey).(*errorHolder); ok {
		h.err = err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// requestLogger tags each response with an X-Request-ID and writes an access log line.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		requestID := req.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		holder := &errorHolder{}
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), errorHolderKey, holder)))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		log.LogHTTPRequest(log.HTTPLogEntry{
			RequestID:  requestID,
			Method:     req.Method,
			Path:       req.URL.Path,
			Status:     rec.status,
			Duration:   time.Since(start),
			Size:       rec.size,
			RemoteAddr: req.RemoteAddr,
			UserAgent:  req.UserAgent(),
			Err:        holder.err,
		})
	})
}
