package models

// FlutterClickAction ouvre l'application Flutter au clic sur la notification
const FlutterClickAction = "FLUTTER_NOTIFICATION_CLICK"

// FCMSendRequest est le corps attendu par l'endpoint FCM v1 messages:send
type FCMSendRequest struct {
	Message FCMMessage `json:"message"`
}

// FCMMessage représente un message adressé à un seul appareil
type FCMMessage struct {
	Token        string            `json:"token"`
	Notification FCMNotification   `json:"notification"`
	Data         map[string]string `json:"data"`
	Android      FCMAndroidConfig  `json:"android"`
}

// FCMNotification est la partie affichée par le système
type FCMNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FCMAndroidConfig contient les options spécifiques à Android
type FCMAndroidConfig struct {
	Notification FCMAndroidNotification `json:"notification"`
}

// FCMAndroidNotification configure l'action au clic et le son
type FCMAndroidNotification struct {
	ClickAction string `json:"click_action"`
	Sound       string `json:"sound"`
}

// FCMSendResponse est la réponse de succès de FCM (name = projects/*/messages/{id})
type FCMSendResponse struct {
	Name string `json:"name"`
}

// NewFCMSendRequest construit l'enveloppe FCM pour un token
func NewFCMSendRequest(token string, msg PushMessage) FCMSendRequest {
	data := msg.Data
	if data == nil {
		data = map[string]string{}
	}

	return FCMSendRequest{
		Message: FCMMessage{
			Token: token,
			Notification: FCMNotification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: data,
			Android: FCMAndroidConfig{
				Notification: FCMAndroidNotification{
					ClickAction: FlutterClickAction,
					Sound:       "default",
				},
			},
		},
	}
}
