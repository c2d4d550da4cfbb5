package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SlackService gère l'envoi d'alertes Slack pour les erreurs de configuration du push
type SlackService struct {
	webhookURL string
	client     *http.Client
}

// SlackMessage représente un message Slack
type SlackMessage struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment représente une pièce jointe Slack
type Attachment struct {
	Color     string  `json:"color,omitempty"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Timestamp int64   `json:"ts,omitempty"`
	Footer    string  `json:"footer,omitempty"`
}

// Field représente un champ dans une pièce jointe Slack
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackService crée une nouvelle instance de SlackService
func NewSlackService(webhookURL string) *SlackService {
	if webhookURL == "" {
		log.Println("⚠️  Slack webhook URL non configuré - alertes Slack désactivées")
	}

	return &SlackService{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Enabled indique si un webhook est configuré
func (s *SlackService) Enabled() bool {
	return s != nil && s.webhookURL != ""
}

// SendPushFailure envoie une alerte pour un échec fatal d'envoi push
func (s *SlackService) SendPushFailure(errorType, subjectID, message string) error {
	if !s.Enabled() {
		return nil
	}

	slackMsg := SlackMessage{
		Attachments: []Attachment{
			{
				Color:     "danger",
				Title:     fmt.Sprintf("🚨 Échec send-push: %s", errorType),
				Text:      message,
				Timestamp: time.Now().Unix(),
				Footer:    "send-push",
				Fields: []Field{
					{
						Title: "Type",
						Value: errorType,
						Short: true,
					},
					{
						Title: "Destinataire",
						Value: subjectID,
						Short: true,
					},
				},
			},
		},
	}

	jsonData, err := json.Marshal(slackMsg)
	if err != nil {
		return fmt.Errorf("erreur lors de la sérialisation du message Slack: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("erreur lors de la création de la requête: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("erreur lors de l'envoi à Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack a retourné un code d'erreur: %d", resp.StatusCode)
	}

	log.Printf("✓ Alerte Slack envoyée: %s", errorType)
	return nil
}

// NotifyFailure envoie l'alerte et se contente de logger un échec
func (s *SlackService) NotifyFailure(errorType, subjectID, message string) {
	if err := s.SendPushFailure(errorType, subjectID, message); err != nil {
		log.Printf("❌ Erreur lors de l'envoi de la notification Slack: %v", err)
	}
}
