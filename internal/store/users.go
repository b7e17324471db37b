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

// UserStore handles account CRUD in the accounts collection.
type UserStore struct {
	col *mongo.Collection
}

// Create inserts a new account with the default credit allotment. The
// password must already be hashed by the caller.
func (s *UserStore) Create(ctx context.Context, name, email, hashedPw, avatar string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  hashedPw,
		Avatar:    avatar,
		Credits:   models.DefaultCredits,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// GetByEmail looks up an account by exact email match.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &user, nil
}

// GetByID looks up an account by its hex id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var user models.User
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &user, nil
}

// AdjustCredits applies delta to the account's balance and returns the
// post-update document. When ctx carries a mongo session the update joins
// that transaction.
func (s *UserStore) AdjustCredits(ctx context.Context, id string, delta int) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{
		"$inc": bson.M{"credits": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("adjust credits: %w", err)
	}
	return &user, nil
}

// ResetAllCredits sets every account's balance to value. Runs outside any
// request-scoped transaction.
func (s *UserStore) ResetAllCredits(ctx context.Context, value int) error {
	update := bson.M{
		"$set": bson.M{"credits": value, "updated_at": time.Now()},
	}
	if _, err := s.col.UpdateMany(ctx, bson.M{}, update); err != nil {
		return fmt.Errorf("reset credits: %w", err)
	}
	return nil
}
