package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerationRecord is one entry in an account's generation history.
type GenerationRecord struct {
	Prompt    string    `json:"prompt"     bson:"prompt"`
	Image     string    `json:"image"      bson:"image"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// GenerationLedger is a document in the generation_ledgers collection: one
// per account, holding that account's records in append order. The document
// is created lazily on the first append.
type GenerationLedger struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id"     bson:"user_id"`
	Generations []GenerationRecord `json:"generations" bson:"generations"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"  bson:"updated_at"`
}

// GenerateRequest is the JSON body for POST /api/v1/generate-image.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}
