package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "snapshots"

// kvDocument is the storage shape: one document per key, raw JSON payload.
type kvDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// ByteStore stores raw values as single documents in a Mongo collection,
// keyed by _id. Each Set replaces the whole document, matching the
// write-the-entire-snapshot persistence model.
type ByteStore struct {
	coll *mongo.Collection
}

func NewByteStore(db *mongo.Database) *ByteStore {
	return &ByteStore{coll: db.Collection(collectionName)}
}

func (b *ByteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.coll.ReplaceOne(
		ctx,
		bson.M{"_id": key},
		kvDocument{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo set: %w", err)
	}
	return nil
}

func (b *ByteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := b.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo get: %w", err)
	}
	return doc.Value, true, nil
}

func (b *ByteStore) Delete(ctx context.Context, key string) error {
	if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}
