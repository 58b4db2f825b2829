package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// sanitize strips CR/LF from request-supplied values before they reach the
// log, so a crafted path cannot forge extra log lines.
var sanitize = strings.NewReplacer("\n", "", "\r", "").Replace

// Logger logs the method, path, status and duration of every request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %s",
			sanitize(r.Method), sanitize(r.URL.Path), rec.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
