package infrastructure

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"student-records/internal/adapter/db/mongodb"
	"student-records/internal/config"
)

// NewMongoClient connects to the document store configured by MONGO_*.
func NewMongoClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*mongo.Client, error) {
	timeout := time.Duration(cfg.Mongo.ConnectTimeoutSeconds) * time.Second
	return mongodb.Connect(ctx, cfg.Mongo.URI, timeout, l)
}

// MongoCollection returns the students collection of client.
func MongoCollection(client *mongo.Client, cfg *config.Config) *mongo.Collection {
	return client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
}

// DisconnectMongo closes client, waiting at most timeout.
func DisconnectMongo(client *mongo.Client, timeout time.Duration) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}
