package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"send-push/models"
)

func newTestServiceAccount(t *testing.T, tokenURI string) *models.ServiceAccount {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey: %v", err)
	}

	return &models.ServiceAccount{
		ProjectID:   "demo-project",
		ClientEmail: "push@demo-project.iam.gserviceaccount.com",
		PrivateKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		TokenURI:    tokenURI,
	}
}

// newTokenServer simule l'endpoint OAuth2 et compte les échanges
func newTokenServer(t *testing.T, accessToken string) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != jwtBearerGrantType || r.PostForm.Get("assertion") == "" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AccessToken{
			AccessToken: accessToken,
			ExpiresIn:   3599,
			TokenType:   "Bearer",
		})
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

// staticTokenProvider retourne toujours le même access token
type staticTokenProvider struct {
	token     string
	projectID string
	err       error
}

func (p staticTokenProvider) Token(context.Context) (string, error) {
	return p.token, p.err
}

func (p staticTokenProvider) ProjectID() string {
	return p.projectID
}
