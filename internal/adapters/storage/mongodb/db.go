package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	toursCollection  = "tours"
	venuesCollection = "venues"
	bandsCollection  = "bands"
)

// Connect abre el cliente y verifica con ping.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to the db: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("db is not available: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes es idempotente; equivale a las migraciones de Postgres.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	tourIdx, err := db.Collection(toursCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "events.starts_at", Value: 1}}},
		{Keys: bson.D{{Key: "events.id", Value: 1}}},
		{Keys: bson.D{{Key: "band_id", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("tour indexes: %w", err)
	}

	venueIdx, err := db.Collection(venuesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("venue indexes: %w", err)
	}

	bandIdx, err := db.Collection(bandsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("band indexes: %w", err)
	}

	out := append(tourIdx, venueIdx...)
	return append(out, bandIdx...), nil
}
