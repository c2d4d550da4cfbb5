package models

// DispatchResult représente le résultat de l'envoi vers un token
type DispatchResult struct {
	Token     string `json:"token"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DispatchSummary agrège les résultats d'un envoi multi-appareils
type DispatchSummary struct {
	Success      bool             `json:"success"`
	TotalTokens  int              `json:"totalTokens"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
	Results      []DispatchResult `json:"results"`
	SubjectID    string           `json:"user_id"`
	Timestamp    string           `json:"timestamp"`
}

// NewDispatchSummary calcule les compteurs à partir des résultats.
// La requête est un succès dès qu'au moins un appareil a été atteint.
func NewDispatchSummary(results []DispatchResult) *DispatchSummary {
	successCount := 0
	for _, r := range results {
		if r.Success {
			successCount++
		}
	}
	if results == nil {
		results = []DispatchResult{}
	}

	return &DispatchSummary{
		Success:      successCount > 0,
		TotalTokens:  len(results),
		SuccessCount: successCount,
		FailedCount:  len(results) - successCount,
		Results:      results,
	}
}

// NoTokensResponse est renvoyée quand l'utilisateur n'a aucun appareil enregistré
type NoTokensResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SentCount int    `json:"sentCount"`
	SubjectID string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

// ErrorEnvelope représente une erreur renvoyée à l'appelant (statut HTTP 200 par défaut)
type ErrorEnvelope struct {
	Error     string `json:"error"`
	ErrorType string `json:"errorType"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	Stack     string `json:"stack,omitempty"`
}

// ErrorResponse représente une réponse d'erreur générique (auth, méthode, ...)
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
