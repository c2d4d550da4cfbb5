package database

import (
	"context"
	"fmt"

	"send-push/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FCMTokenRepository lit les tokens FCM stockés dans MongoDB
type FCMTokenRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ TokenStore = (*FCMTokenRepository)(nil)

// NewFCMTokenRepository crée une nouvelle instance de FCMTokenRepository
func NewFCMTokenRepository(db *mongo.Database) *FCMTokenRepository {
	return &FCMTokenRepository{
		client:     db.Client(),
		collection: db.Collection(FCMTokensCollection),
	}
}

// FindTokensByUserID recherche tous les tokens d'un utilisateur, le plus récemment mis à jour en premier
func (r *FCMTokenRepository) FindTokensByUserID(ctx context.Context, userID string) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{FieldToken: 1}).
		SetSort(bson.D{{Key: FieldUpdatedAt, Value: -1}})

	filter := bson.M{
		FieldUserID: userID,
		FieldToken:  bson.M{BSONNotEqual: ""},
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var documents []models.FCMToken
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des tokens: %w", err)
	}

	tokens := make([]string, 0, len(documents))
	for _, doc := range documents {
		if doc.Token != "" {
			tokens = append(tokens, doc.Token)
		}
	}

	return tokens, nil
}

// Ping vérifie que la connexion MongoDB est active
func (r *FCMTokenRepository) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("client MongoDB non initialisé")
	}
	return r.client.Ping(ctx, nil)
}

// Close ferme la connexion à la base de données
func (r *FCMTokenRepository) Close(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
