package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

const selectTokensByUserID = `SELECT token FROM fcm_tokens WHERE user_id = $1 AND token <> '' ORDER BY updated_at DESC`

// PostgresTokenRepository lit les tokens FCM stockés dans la base relationnelle du backend hébergé
type PostgresTokenRepository struct {
	db *sql.DB
}

var _ TokenStore = (*PostgresTokenRepository)(nil)

// OpenPostgres ouvre le pool de connexions PostgreSQL
func OpenPostgres(dsn string) (*PostgresTokenRepository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DSN PostgreSQL vide")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'ouverture de PostgreSQL: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	log.Println("✓ Pool PostgreSQL initialisé")
	return NewPostgresTokenRepository(db), nil
}

// NewPostgresTokenRepository crée un repository sur un pool existant
func NewPostgresTokenRepository(db *sql.DB) *PostgresTokenRepository {
	return &PostgresTokenRepository{db: db}
}

// FindTokensByUserID recherche tous les tokens d'un utilisateur
func (r *PostgresTokenRepository) FindTokensByUserID(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectTokensByUserID, userID)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]string, 0)
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("erreur lors du décodage des tokens: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erreur lors du parcours des tokens: %w", err)
	}

	return tokens, nil
}

// Ping vérifie que la connexion PostgreSQL est active
func (r *PostgresTokenRepository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("pool PostgreSQL non initialisé")
	}
	return r.db.PingContext(ctx)
}

// Close ferme le pool de connexions
func (r *PostgresTokenRepository) Close(ctx context.Context) error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
