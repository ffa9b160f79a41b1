package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gerenciador/painel/internal/core/ports"
)

const sessionCollection = "sessions"

// SessionBackend stores one document per session, keyed by the storage key.
type SessionBackend struct {
	col *mongo.Collection
}

func NewSessionBackend(db *mongo.Database) *SessionBackend {
	return &SessionBackend{col: db.Collection(sessionCollection)}
}

var _ ports.SessionBackend = (*SessionBackend)(nil)

type sessionDoc struct {
	Key         string `bson:"_id"`
	AccessToken string `bson:"access_token"`
	User        string `bson:"user"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (b *SessionBackend) Get(ctx context.Context, key string) (*ports.SessionRecord, error) {
	var doc sessionDoc
	err := b.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &ports.SessionRecord{AccessToken: doc.AccessToken, User: doc.User}, nil
}

// Put replaces the whole document so a stale half never outlives a rewrite.
func (b *SessionBackend) Put(ctx context.Context, key string, rec ports.SessionRecord) error {
	doc := sessionDoc{
		Key:         key,
		AccessToken: rec.AccessToken,
		User:        rec.User,
		UpdatedAt:   time.Now().UTC().Unix(),
	}
	_, err := b.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (b *SessionBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (b *SessionBackend) Ping(ctx context.Context) error {
	return b.col.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the housekeeping index on the sessions collection.
func (b *SessionBackend) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
	}

	_, err := b.col.Indexes().CreateMany(ctx, indexes)
	return err
}
