package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"send-push/models"
)

// ErrNoCredentials indique qu'aucun compte de service n'a été fourni
var ErrNoCredentials = errors.New("aucun compte de service Firebase configuré")

// CredentialsJSON retourne le JSON brut du compte de service.
// Ordre de priorité : FIREBASE_CREDENTIALS_JSON, FIREBASE_CREDENTIALS_BASE64, puis le fichier.
func (c *Config) CredentialsJSON() ([]byte, error) {
	if c.FirebaseCredentialsJSON != "" {
		return []byte(c.FirebaseCredentialsJSON), nil
	}

	if c.FirebaseCredentialsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("erreur lors du décodage de FIREBASE_CREDENTIALS_BASE64: %w", err)
		}
		return decoded, nil
	}

	if c.FirebaseCredentialsFile == "" {
		return nil, ErrNoCredentials
	}
	raw, err := os.ReadFile(c.FirebaseCredentialsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la lecture de %s: %w", c.FirebaseCredentialsFile, err)
	}
	return raw, nil
}

// LoadServiceAccount charge le compte de service et applique les surcharges de configuration
func (c *Config) LoadServiceAccount() (*models.ServiceAccount, error) {
	raw, err := c.CredentialsJSON()
	if err != nil {
		return nil, err
	}

	var account models.ServiceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("compte de service JSON invalide: %w", err)
	}

	if c.FirebaseProjectID != "" {
		account.ProjectID = c.FirebaseProjectID
	}
	if c.OAuthTokenURI != "" {
		account.TokenURI = c.OAuthTokenURI
	}

	if account.ProjectID == "" {
		return nil, fmt.Errorf("project_id manquant (compte de service ou FIREBASE_PROJECT_ID)")
	}

	return &account, nil
}
