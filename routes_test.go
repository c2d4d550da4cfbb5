package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"send-push/handlers"
	"send-push/models"
)

type emptyResolver struct{}

func (emptyResolver) Resolve(context.Context, *models.NotificationRequest) ([]string, error) {
	return nil, nil
}

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(context.Context, []string, models.PushMessage) (*models.DispatchSummary, error) {
	return nil, errors.New("ne doit pas être appelé")
}

func testRouter(jwtSecret string) http.Handler {
	sendPush := handlers.NewSendPushHandler(emptyResolver{}, failingDispatcher{}, handlers.SendPushOptions{})
	health := handlers.NewHealthHandler("test", nil, "", "http")
	return newRouter([]string{"*"}, jwtSecret, sendPush, health)
}

func TestRouterCORSSurToutesLesReponses(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		secret   string
		wantCode int
	}{
		{"GET sur send-push refusé", http.MethodGet, "/send-push", "", "", http.StatusMethodNotAllowed},
		{"DELETE sur l'alias refusé", http.MethodDelete, "/functions/v1/send-push", "", "", http.StatusMethodNotAllowed},
		{"preflight send-push", http.MethodOptions, "/send-push", "", "", http.StatusOK},
		{"preflight avec authentification active", http.MethodOptions, "/send-push", "", "secret", http.StatusOK},
		{"POST sans token d'appelant", http.MethodPost, "/send-push", `{"user_id":"u1","title":"t","body":"b"}`, "secret", http.StatusUnauthorized},
		{"POST send-push", http.MethodPost, "/functions/v1/send-push", `{"user_id":"u1","title":"t","body":"b"}`, "", http.StatusOK},
		{"POST sur health refusé", http.MethodPost, "/api/health", "", "", http.StatusMethodNotAllowed},
		{"route inconnue", http.MethodGet, "/inconnue", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			testRouter(tt.secret).ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("Code = %d, attendu %d (%s)", rr.Code, tt.wantCode, rr.Body.String())
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, attendu *", got)
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID manquant")
			}
		})
	}
}
