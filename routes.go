package main

import (
	"net/http"

	"send-push/constants"
	"send-push/handlers"
	"send-push/middleware"
	"send-push/utils"

	"github.com/gorilla/mux"
)

// sendPushPaths sont les chemins exposés pour la fonction (le second reprend celui des fonctions hébergées)
var sendPushPaths = []string{"/send-push", "/functions/v1/send-push"}

// newRouter déclare les routes. Les routes send-push n'ont pas de filtre de méthode :
// SendPushHandler répond lui-même au preflight et aux méthodes refusées, avec les en-têtes CORS.
func newRouter(corsOrigins []string, jwtSecret string, sendPush http.Handler, health *handlers.HealthHandler) *mux.Router {
	cors := middleware.CORS(corsOrigins)

	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.Use(cors)

	// Les réponses produites par mux (404, 405) passent aussi par les middlewares
	router.NotFoundHandler = middleware.Logging(cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Route introuvable")
	})))
	router.MethodNotAllowedHandler = middleware.Logging(cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	})))

	// Route de santé (health check)
	router.HandleFunc("/api/health", health.Health).Methods("GET", "OPTIONS")

	// L'appelant doit présenter un JWT si FUNCTION_JWT_SECRET est défini
	handler := sendPush
	if jwtSecret != "" {
		handler = middleware.Auth(jwtSecret)(sendPush)
	}
	for _, path := range sendPushPaths {
		router.Handle(path, handler)
	}

	return router
}
