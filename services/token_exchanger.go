package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"send-push/models"
	"send-push/utils"
)

const jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// maxResponseBody borne la lecture des réponses des services externes
const maxResponseBody = 64 << 10

// TokenExchanger échange une assertion JWT signée contre un access token OAuth2
type TokenExchanger struct {
	tokenURI string
	client   *http.Client
}

// NewTokenExchanger crée un TokenExchanger pour l'endpoint donné
func NewTokenExchanger(tokenURI string, timeout time.Duration) *TokenExchanger {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TokenExchanger{
		tokenURI: tokenURI,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Exchange poste l'assertion à l'endpoint OAuth2. Toute erreur est une *utils.TokenExchangeError ; pas de retry.
func (e *TokenExchanger) Exchange(ctx context.Context, assertion string) (*models.AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.tokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &utils.TokenExchangeError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &utils.TokenExchangeError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &utils.TokenExchangeError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &utils.TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var token models.AccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &utils.TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}
	if token.AccessToken == "" {
		return nil, &utils.TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errors.New("access_token absent de la réponse"),
		}
	}

	return &token, nil
}
