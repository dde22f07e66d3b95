package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/errors"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string // Connection URI, e.g. mongodb://localhost:27017
	Database   string // Database name
	Collection string // Collection name for description records
}

// DefaultMongoConfig returns sensible local defaults.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		URI:        "mongodb://localhost:27017",
		Database:   "speed",
		Collection: "descriptions",
	}
}

// MongoStore is a MongoDB-backed Store implementation.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put implements Store.
func (s *MongoStore) Put(ctx context.Context, name string, desc *describe.Description) (*Record, error) {
	rec := &Record{
		ID:          NewID(),
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		Description: desc,
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert description: %w", err)
	}
	return rec, nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDescriptionNotFound, "description %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find description: %w", err)
	}
	return &rec, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list descriptions: %w", err)
	}
	defer cur.Close(ctx)

	var records []*Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode descriptions: %w", err)
	}
	return records, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete description: %w", err)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDescriptionNotFound, "description %s not found", id)
	}
	return nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
