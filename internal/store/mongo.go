package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection   = "accounts"
	ledgersCollection = "generation_ledgers"
)

// Mongo wraps the database handle and owns cross-collection concerns:
// index creation and multi-document transactions.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	return &Mongo{client: client, db: db}
}

func (m *Mongo) Users() *UserStore {
	return &UserStore{col: m.db.Collection(usersCollection)}
}

func (m *Mongo) Ledgers() *LedgerStore {
	return &LedgerStore{col: m.db.Collection(ledgersCollection)}
}

// EnsureIndexes creates the unique email index on the accounts collection
// and the user_id index on the ledgers collection.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("accounts email index: %w", err)
	}
	_, err = m.db.Collection(ledgersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ledgers user_id index: %w", err)
	}
	return nil
}

// WithTransaction runs fn inside a mongo session transaction. Store methods
// called with the context passed to fn participate in the transaction; if fn
// returns an error the transaction is aborted and nothing is persisted. The
// driver retries fn on transient write conflicts, so fn must be safe to
// re-run.
func (m *Mongo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
