package models

// NotificationRequest représente une demande d'envoi de notification push.
// Token et UserID sont exclusifs en pratique : si Token est présent, il est prioritaire.
type NotificationRequest struct {
	Token  string            `json:"token,omitempty"`
	UserID string            `json:"user_id,omitempty"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data"`
}

// SubjectID retourne l'identifiant utilisé dans les réponses (user_id, sinon préfixe du token)
func (r *NotificationRequest) SubjectID() string {
	if r.UserID != "" {
		return r.UserID
	}
	return TokenPrefix(r.Token)
}

// Message construit le message push à partir de la requête
func (r *NotificationRequest) Message() PushMessage {
	return PushMessage{
		Title: r.Title,
		Body:  r.Body,
		Data:  r.Data,
	}
}

// PushMessage est le contenu envoyé à chaque appareil
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// TokenPrefix tronque un token pour les logs et les réponses
func TokenPrefix(token string) string {
	if len(token) > 10 {
		return token[:10] + "..."
	}
	return token + "..."
}
