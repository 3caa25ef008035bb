package labels

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Default MongoDB locations.
const (
	DefaultMongoDatabase   = "bumpkit"
	DefaultMongoCollection = "failure_labels"
)

// MongoSink upserts entries into a MongoDB collection keyed by entry id.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSink connects to uri and verifies the connection. Empty
// database or collection names select the defaults.
func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return NewMongoSinkFromCollection(client, client.Database(database).Collection(collection)), nil
}

// NewMongoSinkFromCollection wraps an existing collection. Close
// disconnects client when it is non-nil.
func NewMongoSinkFromCollection(client *mongo.Client, coll *mongo.Collection) *MongoSink {
	return &MongoSink{client: client, coll: coll}
}

// Put replaces the stored entry with the same id, inserting it if absent.
func (s *MongoSink) Put(ctx context.Context, e Entry) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert entry %s: %w", e.CommitHash, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *MongoSink) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
