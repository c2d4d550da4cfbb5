package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FCMToken représente un appareil enregistré pour les notifications push.
// Les documents sont créés par les applications clientes, ce service ne fait que les lire.
type FCMToken struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Token     string             `json:"token" bson:"token"`
	Device    string             `json:"device,omitempty" bson:"device,omitempty"` // android, ios, web
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
