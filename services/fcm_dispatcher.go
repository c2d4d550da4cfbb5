package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"send-push/models"
	"send-push/utils"
)

// FCMDispatcher envoie les notifications via l'API HTTP v1 de Firebase Cloud Messaging
type FCMDispatcher struct {
	tokens   AccessTokenProvider
	endpoint string
	client   *http.Client
	workers  int
	timeout  time.Duration
}

var _ Dispatcher = (*FCMDispatcher)(nil)

// NewFCMDispatcher crée un FCMDispatcher. endpoint est la racine de l'API (https://fcm.googleapis.com).
func NewFCMDispatcher(tokens AccessTokenProvider, endpoint string, workers int, timeout time.Duration) *FCMDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FCMDispatcher{
		tokens:   tokens,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		workers:  workers,
		timeout:  timeout,
	}
}

// Dispatch obtient un access token puis envoie à chaque token
func (d *FCMDispatcher) Dispatch(ctx context.Context, tokens []string, msg models.PushMessage) (*models.DispatchSummary, error) {
	if len(tokens) == 0 {
		return models.NewDispatchSummary(nil), nil
	}

	accessToken, err := d.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	return d.DispatchAll(ctx, tokens, msg, accessToken, d.tokens.ProjectID()), nil
}

// DispatchAll envoie le message à chaque token avec l'access token fourni
func (d *FCMDispatcher) DispatchAll(ctx context.Context, tokens []string, msg models.PushMessage, accessToken, projectID string) *models.DispatchSummary {
	sendURL := fmt.Sprintf("%s/v1/projects/%s/messages:send", d.endpoint, url.PathEscape(projectID))

	return fanOut(ctx, tokens, d.workers, d.timeout, func(ctx context.Context, token string) (string, error) {
		return d.send(ctx, sendURL, accessToken, token, msg)
	})
}

func (d *FCMDispatcher) send(ctx context.Context, sendURL, accessToken, token string, msg models.PushMessage) (string, error) {
	payload, err := json.Marshal(models.NewFCMSendRequest(token, msg))
	if err != nil {
		return "", &utils.DispatchError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(payload))
	if err != nil {
		return "", &utils.DispatchError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", &utils.DispatchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", &utils.DispatchError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &utils.DispatchError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var sent models.FCMSendResponse
	if err := json.Unmarshal(body, &sent); err != nil {
		return "", &utils.DispatchError{Err: fmt.Errorf("réponse FCM illisible: %w", err)}
	}

	return sent.Name, nil
}
