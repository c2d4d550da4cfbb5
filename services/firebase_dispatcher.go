package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"send-push/models"
	"send-push/utils"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseDispatcher envoie les notifications via le SDK Firebase Admin
type FirebaseDispatcher struct {
	client  *messaging.Client
	workers int
	timeout time.Duration
}

var _ Dispatcher = (*FirebaseDispatcher)(nil)

// NewFirebaseDispatcher initialise le client messaging à partir du JSON du compte de service
func NewFirebaseDispatcher(ctx context.Context, credentialsJSON []byte, projectID string, workers int, timeout time.Duration) (*FirebaseDispatcher, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'initialisation de Firebase: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création du client FCM: %w", err)
	}

	log.Println("✓ Firebase Cloud Messaging (SDK) initialisé")

	return &FirebaseDispatcher{
		client:  client,
		workers: workers,
		timeout: timeout,
	}, nil
}

// NewDisabledFirebaseDispatcher crée un dispatcher sans client : chaque envoi échoue avec une SigningError
func NewDisabledFirebaseDispatcher() *FirebaseDispatcher {
	return &FirebaseDispatcher{}
}

// Dispatch envoie le message à chaque token via le SDK
func (d *FirebaseDispatcher) Dispatch(ctx context.Context, tokens []string, msg models.PushMessage) (*models.DispatchSummary, error) {
	if len(tokens) == 0 {
		return models.NewDispatchSummary(nil), nil
	}
	if d.client == nil {
		return nil, &utils.SigningError{Err: errors.New("Firebase non initialisé")}
	}

	return fanOut(ctx, tokens, d.workers, d.timeout, func(ctx context.Context, token string) (string, error) {
		messageID, err := d.client.Send(ctx, buildFirebaseMessage(token, msg))
		if err != nil {
			return "", &utils.DispatchError{Err: err}
		}
		return messageID, nil
	}), nil
}

// buildFirebaseMessage reproduit l'enveloppe de l'API HTTP v1 avec les types du SDK
func buildFirebaseMessage(token string, msg models.PushMessage) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				ClickAction: models.FlutterClickAction,
				Sound:       "default",
			},
		},
	}
}
