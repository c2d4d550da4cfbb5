package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"send-push/database"
	"send-push/utils"
)

var startTime = time.Now()

// HealthHandler gère les endpoints de santé
type HealthHandler struct {
	environment     string
	store           database.TokenStore
	storeName       string
	dispatchBackend string
}

// NewHealthHandler crée un nouveau HealthHandler. store peut être nil.
func NewHealthHandler(environment string, store database.TokenStore, storeName, dispatchBackend string) *HealthHandler {
	return &HealthHandler{
		environment:     environment,
		store:           store,
		storeName:       storeName,
		dispatchBackend: dispatchBackend,
	}
}

// Health retourne l'état de santé du serveur avec métriques
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(startTime).String()

	dbStatus := "ok"
	if h.store == nil {
		dbStatus = "disabled"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			dbStatus = "error"
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"message":          "Le serveur fonctionne correctement",
		"env":              h.environment,
		"database":         h.storeName,
		"db_status":        dbStatus,
		"dispatch_backend": h.dispatchBackend,
		"uptime":           uptime,
		"go_version":       runtime.Version(),
	})
}
