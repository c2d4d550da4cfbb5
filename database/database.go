package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FCMTokensCollection est la collection des tokens d'appareils
const FCMTokensCollection = "fcm_tokens"

// ConnectMongo établit la connexion à MongoDB et crée les index nécessaires
func ConnectMongo(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la connexion à MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("erreur lors du ping MongoDB: %w", err)
	}

	log.Println("✓ Connexion à MongoDB établie")

	db := client.Database(dbName)
	if err = createIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("erreur lors de la création des index: %w", err)
	}

	return db, nil
}

// createIndexes crée les index nécessaires
func createIndexes(ctx context.Context, db *mongo.Database) error {
	// Index sur user_id : la résolution des destinataires filtre toujours dessus
	userIndex := mongo.IndexModel{
		Keys: bson.D{{Key: FieldUserID, Value: 1}},
	}

	_, err := db.Collection(FCMTokensCollection).Indexes().CreateOne(ctx, userIndex)
	if err != nil {
		return fmt.Errorf("erreur lors de la création de l'index user_id: %w", err)
	}

	log.Println("✓ Index MongoDB créés")
	return nil
}
