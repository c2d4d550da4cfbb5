package utils

import (
	"errors"
	"fmt"
)

// Types d'erreurs exposés dans le champ errorType des réponses
const (
	ErrorTypeValidation    = "ValidationError"
	ErrorTypeLookup        = "LookupError"
	ErrorTypeSigning       = "SigningError"
	ErrorTypeTokenExchange = "TokenExchangeError"
	ErrorTypeDispatch      = "DispatchError"
	ErrorTypeInternal      = "InternalError"
)

// LookupError indique que la recherche des tokens d'un utilisateur a échoué
type LookupError struct {
	UserID string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("erreur lors de la récupération des tokens de %s: %v", e.UserID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// SigningError indique un compte de service invalide ou une erreur cryptographique
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("erreur lors de la signature du JWT: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// TokenExchangeError indique que l'endpoint OAuth2 a refusé l'assertion ou est injoignable.
// StatusCode vaut 0 pour une erreur de transport.
type TokenExchangeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("erreur lors de l'échange du token OAuth2: %v", e.Err)
	}
	return fmt.Sprintf("l'échange du token OAuth2 a échoué (HTTP %d): %s", e.StatusCode, e.Body)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// DispatchError représente l'échec d'un envoi vers un token. Elle n'interrompt jamais la boucle d'envoi.
type DispatchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DispatchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("erreur lors de l'envoi: %v", e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// ErrorType classe une erreur selon la taxonomie exposée aux appelants
func ErrorType(err error) string {
	var validationErr ValidationError
	var lookupErr *LookupError
	var signingErr *SigningError
	var exchangeErr *TokenExchangeError
	var dispatchErr *DispatchError

	switch {
	case errors.As(err, &validationErr):
		return ErrorTypeValidation
	case errors.As(err, &lookupErr):
		return ErrorTypeLookup
	case errors.As(err, &signingErr):
		return ErrorTypeSigning
	case errors.As(err, &exchangeErr):
		return ErrorTypeTokenExchange
	case errors.As(err, &dispatchErr):
		return ErrorTypeDispatch
	default:
		return ErrorTypeInternal
	}
}
