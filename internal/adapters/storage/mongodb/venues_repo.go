package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/venues"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type venueDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	City      string    `bson:"city"`
	Capacity  int       `bson:"capacity"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type VenuesRepo struct {
	coll *mongo.Collection
}

func NewVenuesRepo(db *mongo.Database) *VenuesRepo {
	return &VenuesRepo{coll: db.Collection(venuesCollection)}
}

func (r *VenuesRepo) Create(ctx context.Context, v schedule.Venue) error {
	_, err := r.coll.InsertOne(ctx, venueDoc{
		ID:        v.ID,
		Name:      v.Name,
		City:      v.City,
		Capacity:  v.Capacity,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("venue %s already exists: %w", v.ID, err)
	}
	return err
}

func (r *VenuesRepo) Update(ctx context.Context, v schedule.Venue) error {
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: v.ID}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: v.Name},
		{Key: "city", Value: v.City},
		{Key: "capacity", Value: v.Capacity},
		{Key: "updated_at", Value: v.UpdatedAt},
	}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return venues.ErrNotFound
	}
	return nil
}

func (r *VenuesRepo) GetByID(ctx context.Context, id string) (schedule.Venue, error) {
	var doc venueDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return schedule.Venue{}, venues.ErrNotFound
		}
		return schedule.Venue{}, err
	}
	return fromVenueDoc(doc), nil
}

func (r *VenuesRepo) List(ctx context.Context, filter venues.ListFilter) ([]schedule.Venue, error) {
	q := bson.D{}
	if city := strings.TrimSpace(filter.City); city != "" {
		q = append(q, bson.E{Key: "city", Value: primitive.Regex{Pattern: "^" + regexp.QuoteMeta(city) + "$", Options: "i"}})
	}
	if text := strings.TrimSpace(filter.Query); text != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		q = append(q, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: rx}},
			bson.D{{Key: "city", Value: rx}},
		}})
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]schedule.Venue, 0)
	for cur.Next(ctx) {
		var doc venueDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromVenueDoc(doc))
	}
	return out, cur.Err()
}

func (r *VenuesRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	return int(n), err
}

func fromVenueDoc(doc venueDoc) schedule.Venue {
	return schedule.Venue{
		ID:        doc.ID,
		Name:      doc.Name,
		City:      doc.City,
		Capacity:  doc.Capacity,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}
}
