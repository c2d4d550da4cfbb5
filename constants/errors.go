package constants

// Messages d'erreur HTTP courants
const (
	ErrMethodNotAllowed = "Méthode non autorisée"
	ErrNotAuthenticated = "Token d'authentification manquant"
	ErrInvalidAuthToken = "Format du token invalide"
	ErrInvalidToken     = "Token invalide ou expiré"
	ErrEmptyBody        = "corps de requête vide"
	ErrInvalidJSONBody  = "Body JSON invalide"
	ErrInvalidFormBody  = "Body formulaire invalide"
	ErrInvalidDataField = "data doit être un objet JSON"
)

// Messages de réponse du send-push (contrat public, ne pas traduire)
const (
	MsgNoTokensFound = "No tokens found for user"
)

// En-têtes HTTP
const (
	HeaderContentType     = "Content-Type"
	HeaderApplicationJSON = "application/json"
	HeaderFormURLEncoded  = "application/x-www-form-urlencoded"
	HeaderRequestID       = "X-Request-ID"
)
