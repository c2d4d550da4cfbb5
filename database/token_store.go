package database

import "context"

// TokenStore donne accès aux tokens d'appareils enregistrés par les applications clientes
type TokenStore interface {
	// FindTokensByUserID retourne tous les tokens d'un utilisateur (un par appareil)
	FindTokensByUserID(ctx context.Context, userID string) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
