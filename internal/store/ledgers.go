package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adirao/pixelforge/internal/models"
)

// LedgerStore handles per-account generation history in the
// generation_ledgers collection.
type LedgerStore struct {
	col *mongo.Collection
}

// Append pushes a record onto the account's ledger, creating the ledger
// document on first write. When ctx carries a mongo session the upsert
// joins that transaction.
func (s *LedgerStore) Append(ctx context.Context, userID, prompt, imageURL string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	now := time.Now()
	update := bson.M{
		"$push": bson.M{"generations": models.GenerationRecord{
			Prompt:    prompt,
			Image:     imageURL,
			CreatedAt: now,
		}},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"user_id": oid, "created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, bson.M{"user_id": oid}, update, opts); err != nil {
		return fmt.Errorf("append generation: %w", err)
	}
	return nil
}

// Records returns the account's full generation history in append order.
// An account that has never generated anything gets an empty slice, not an
// error.
func (s *LedgerStore) Records(ctx context.Context, userID string) ([]models.GenerationRecord, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	var ledger models.GenerationLedger
	err = s.col.FindOne(ctx, bson.M{"user_id": oid}).Decode(&ledger)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.GenerationRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	return ledger.Generations, nil
}
