package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"send-push/models"
)

// TimestampLayout correspond au format ISO-8601 en millisecondes (UTC)
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formate un instant pour les réponses JSON
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// RespondJSON envoie une réponse JSON
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	if statusCode > 0 {
		w.WriteHeader(statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Les en-têtes sont déjà partis, on ne peut qu'ajouter un corps minimal
			_, _ = w.Write([]byte(`{"error":"Internal Server Error","message":"Erreur lors de l'encodage JSON"}`))
		}
	}
}

// RespondError envoie une réponse d'erreur JSON
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
