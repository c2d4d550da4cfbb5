package services

import (
	"context"
	"errors"
	"time"

	"send-push/database"
	"send-push/models"
	"send-push/utils"
)

// RecipientResolver détermine les tokens à notifier pour une requête
type RecipientResolver struct {
	store   database.TokenStore
	timeout time.Duration
}

// NewRecipientResolver crée un RecipientResolver. store peut être nil si seul le mode token direct est utilisé.
func NewRecipientResolver(store database.TokenStore, timeout time.Duration) *RecipientResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RecipientResolver{store: store, timeout: timeout}
}

// Resolve retourne [token] en mode direct, sinon tous les tokens de l'utilisateur (dédoublonnés).
// Une liste vide sans erreur signifie qu'il n'y a rien à envoyer.
func (r *RecipientResolver) Resolve(ctx context.Context, req *models.NotificationRequest) ([]string, error) {
	if req.Token != "" {
		return []string{req.Token}, nil
	}

	if r.store == nil {
		return nil, &utils.LookupError{UserID: req.UserID, Err: errors.New("aucun stockage de tokens configuré")}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tokens, err := r.store.FindTokensByUserID(ctx, req.UserID)
	if err != nil {
		return nil, &utils.LookupError{UserID: req.UserID, Err: err}
	}

	return uniqueTokens(tokens), nil
}

// uniqueTokens retire les doublons et les tokens vides en conservant l'ordre
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
