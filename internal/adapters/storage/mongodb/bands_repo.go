package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/bands"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bandDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Genre     string    `bson:"genre"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type BandsRepo struct {
	coll *mongo.Collection
}

func NewBandsRepo(db *mongo.Database) *BandsRepo {
	return &BandsRepo{coll: db.Collection(bandsCollection)}
}

func (r *BandsRepo) Create(ctx context.Context, b bands.Band) error {
	_, err := r.coll.InsertOne(ctx, bandDoc{
		ID:        b.ID,
		Name:      b.Name,
		Genre:     b.Genre,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("band %s already exists: %w", b.ID, err)
	}
	return err
}

func (r *BandsRepo) GetByID(ctx context.Context, id string) (bands.Band, error) {
	var doc bandDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bands.Band{}, bands.ErrNotFound
		}
		return bands.Band{}, err
	}
	return fromBandDoc(doc), nil
}

func (r *BandsRepo) List(ctx context.Context, filter bands.ListFilter) ([]bands.Band, error) {
	q := bson.D{}
	if text := strings.TrimSpace(filter.Query); text != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		q = append(q, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: rx}},
			bson.D{{Key: "genre", Value: rx}},
		}})
	}

	// Collation nivel 2: orden por nombre sin distinguir mayúsculas.
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetCollation(&options.Collation{Locale: "en", Strength: 2})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]bands.Band, 0)
	for cur.Next(ctx) {
		var doc bandDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromBandDoc(doc))
	}
	return out, cur.Err()
}

func (r *BandsRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	return int(n), err
}

func fromBandDoc(doc bandDoc) bands.Band {
	return bands.Band{
		ID:        doc.ID,
		Name:      doc.Name,
		Genre:     doc.Genre,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}
}
