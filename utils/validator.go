package utils

import (
	"fmt"
	"strings"
)

// ValidationError représente une erreur de validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implémente l'interface error
func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidateRequired valide qu'un champ n'est pas vide
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: fmt.Sprintf("le champ %s est requis", field)}
	}
	return nil
}

// ValidateRecipient vérifie qu'au moins un destinataire (token ou user_id) est fourni
func ValidateRecipient(token, userID string) error {
	if strings.TrimSpace(token) == "" && strings.TrimSpace(userID) == "" {
		return ValidationError{Field: "token", Message: "token ou user_id est requis"}
	}
	return nil
}
