package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"send-push/constants"

	"github.com/google/uuid"
)

const RequestIDContextKey contextKey = "request_id"

// responseWriter wrapper pour capturer le code de statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logging enregistre chaque requête avec un identifiant (X-Request-ID).
// Un identifiant fourni par l'appelant est réutilisé.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(constants.HeaderRequestID, requestID)

		rw := newResponseWriter(w)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(rw, r.WithContext(ctx))

		duration := time.Since(start)
		if rw.statusCode >= http.StatusBadRequest {
			log.Printf("⚠️ [%s] %s %s -> %d (%s)", requestID, r.Method, r.RequestURI, rw.statusCode, duration)
			return
		}
		log.Printf("📨 [%s] %s %s -> %d (%s)", requestID, r.Method, r.RequestURI, rw.statusCode, duration)
	})
}

// GetRequestID retourne l'identifiant de la requête courante, ou "" hors middleware
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
