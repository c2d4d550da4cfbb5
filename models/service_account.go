package models

import "time"

// DefaultTokenURI est l'endpoint OAuth2 Google utilisé quand le compte de service n'en précise pas
const DefaultTokenURI = "https://oauth2.googleapis.com/token"

// ServiceAccount représente le fichier JSON d'un compte de service Firebase
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURI     string `json:"token_uri"`
}

// Audience retourne l'URL de l'endpoint de token (claim aud)
func (s *ServiceAccount) Audience() string {
	if s.TokenURI != "" {
		return s.TokenURI
	}
	return DefaultTokenURI
}

// AccessToken est la réponse de l'endpoint OAuth2
type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ExpiresAt calcule la date d'expiration à partir de l'instant d'obtention
func (t *AccessToken) ExpiresAt(obtainedAt time.Time) time.Time {
	return obtainedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}
