package services

import (
	"context"
	"errors"
	"testing"

	"send-push/models"
	"send-push/utils"
)

func TestDisabledFirebaseDispatcher(t *testing.T) {
	d := NewDisabledFirebaseDispatcher()

	_, err := d.Dispatch(context.Background(), []string{"A"}, testMessage())
	var signingErr *utils.SigningError
	if !errors.As(err, &signingErr) {
		t.Errorf("erreur = %v, attendu *SigningError", err)
	}

	// Sans token, rien n'est envoyé et aucune erreur n'est remontée
	summary, err := d.Dispatch(context.Background(), nil, testMessage())
	if err != nil || summary.TotalTokens != 0 {
		t.Errorf("Dispatch(nil) = %+v, %v", summary, err)
	}
}

func TestBuildFirebaseMessage(t *testing.T) {
	msg := buildFirebaseMessage("tok", models.PushMessage{
		Title: "Réservation confirmée",
		Body:  "Votre prestataire arrive à 14h",
		Data:  map[string]string{"booking_id": "42"},
	})

	if msg.Token != "tok" {
		t.Errorf("Token = %v", msg.Token)
	}
	if msg.Notification == nil || msg.Notification.Title != "Réservation confirmée" {
		t.Errorf("Notification = %+v", msg.Notification)
	}
	if msg.Data["booking_id"] != "42" {
		t.Errorf("Data = %v", msg.Data)
	}
	if msg.Android == nil || msg.Android.Notification == nil {
		t.Fatal("Android.Notification manquant")
	}
	if msg.Android.Notification.ClickAction != models.FlutterClickAction {
		t.Errorf("ClickAction = %v", msg.Android.Notification.ClickAction)
	}
	if msg.Android.Notification.Sound != "default" {
		t.Errorf("Sound = %v", msg.Android.Notification.Sound)
	}
}
