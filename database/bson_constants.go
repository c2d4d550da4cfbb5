package database

// Champs des documents fcm_tokens
const (
	FieldUserID    = "user_id"
	FieldToken     = "token"
	FieldUpdatedAt = "updated_at"
)

// Opérateurs MongoDB (évite les littéraux dupliqués)
const (
	BSONNotEqual = "$ne"
)
