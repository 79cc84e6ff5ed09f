package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/tours"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tourDoc guarda el tour con sus eventos embebidos: un Save es un solo documento.
type tourDoc struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Artist    string     `bson:"artist"`
	BandID    string     `bson:"band_id,omitempty"`
	Notes     string     `bson:"notes"`
	StartDate *time.Time `bson:"start_date"`
	EndDate   *time.Time `bson:"end_date"`
	Status    string     `bson:"status"`
	CreatedBy string     `bson:"created_by"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	Events    []eventDoc `bson:"events"`
}

type eventDoc struct {
	ID          string    `bson:"id"`
	VenueID     string    `bson:"venue_id"`
	StartsAt    time.Time `bson:"starts_at"`
	UTCOffset   int       `bson:"utc_offset_seconds"`
	DurationSec int64     `bson:"duration_seconds"`
	Status      string    `bson:"status"`
	Notes       string    `bson:"notes"`
	CreatedAt   time.Time `bson:"created_at"`
}

type ToursRepo struct {
	coll *mongo.Collection
}

func NewToursRepo(db *mongo.Database) *ToursRepo {
	return &ToursRepo{coll: db.Collection(toursCollection)}
}

func (r *ToursRepo) Save(ctx context.Context, t schedule.Tour) error {
	doc := toTourDoc(t)
	_, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: t.ID}}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *ToursRepo) GetByID(ctx context.Context, id string) (schedule.Tour, error) {
	var doc tourDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return schedule.Tour{}, tours.ErrNotFound
		}
		return schedule.Tour{}, err
	}
	return fromTourDoc(doc), nil
}

func (r *ToursRepo) List(ctx context.Context, filter tours.ListFilter) ([]schedule.Tour, error) {
	q := bson.D{}
	if len(filter.Statuses) > 0 {
		statuses := make(bson.A, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		q = append(q, bson.E{Key: "status", Value: bson.D{{Key: "$in", Value: statuses}}})
	}
	if filter.BandID != "" {
		q = append(q, bson.E{Key: "band_id", Value: filter.BandID})
	}

	var and bson.A
	if filter.From != nil {
		and = append(and, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "end_date", Value: nil}},
			bson.D{{Key: "end_date", Value: bson.D{{Key: "$gte", Value: schedule.DateOf(*filter.From)}}}},
		}}})
	}
	if filter.To != nil {
		and = append(and, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "start_date", Value: nil}},
			bson.D{{Key: "start_date", Value: bson.D{{Key: "$lte", Value: schedule.DateOf(*filter.To)}}}},
		}}})
	}
	if len(and) > 0 {
		q = append(q, bson.E{Key: "$and", Value: and})
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "start_date", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]schedule.Tour, 0)
	for cur.Next(ctx) {
		var doc tourDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromTourDoc(doc))
	}
	return out, cur.Err()
}

func (r *ToursRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return tours.ErrNotFound
	}
	return nil
}

// FindEvent: si el id se repite entre tours gana el evento creado primero.
func (r *ToursRepo) FindEvent(ctx context.Context, eventID string) (schedule.Event, error) {
	cur, err := r.coll.Find(ctx, bson.D{{Key: "events.id", Value: eventID}})
	if err != nil {
		return schedule.Event{}, err
	}
	defer cur.Close(ctx)

	var (
		found schedule.Event
		ok    bool
	)
	for cur.Next(ctx) {
		var doc tourDoc
		if err := cur.Decode(&doc); err != nil {
			return schedule.Event{}, err
		}
		t := fromTourDoc(doc)
		idx := t.FindEvent(eventID)
		if idx < 0 {
			continue
		}
		e := t.Events[idx]
		if !ok || e.CreatedAt.Before(found.CreatedAt) ||
			(e.CreatedAt.Equal(found.CreatedAt) && e.TourID < found.TourID) {
			found, ok = e, true
		}
	}
	if err := cur.Err(); err != nil {
		return schedule.Event{}, err
	}
	if !ok {
		return schedule.Event{}, fmt.Errorf("%w: event %s", schedule.ErrNotFound, eventID)
	}
	return found, nil
}

func toTourDoc(t schedule.Tour) tourDoc {
	doc := tourDoc{
		ID:        t.ID,
		Name:      t.Name,
		Artist:    t.Artist,
		BandID:    t.BandID,
		Notes:     t.Notes,
		Status:    string(t.Status),
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Events:    make([]eventDoc, 0, len(t.Events)),
	}
	if !t.StartDate.IsZero() {
		d := schedule.DateOf(t.StartDate)
		doc.StartDate = &d
	}
	if !t.EndDate.IsZero() {
		d := schedule.DateOf(t.EndDate)
		doc.EndDate = &d
	}
	for _, e := range t.Events {
		_, offset := e.StartsAt.Zone()
		doc.Events = append(doc.Events, eventDoc{
			ID:          e.ID,
			VenueID:     e.VenueID,
			StartsAt:    e.StartsAt,
			UTCOffset:   offset,
			DurationSec: int64(e.Duration / time.Second),
			Status:      string(e.Status),
			Notes:       e.Notes,
			CreatedAt:   e.CreatedAt,
		})
	}
	return doc
}

func fromTourDoc(doc tourDoc) schedule.Tour {
	t := schedule.Tour{
		ID:        doc.ID,
		Name:      doc.Name,
		Artist:    doc.Artist,
		BandID:    doc.BandID,
		Notes:     doc.Notes,
		Status:    schedule.TourStatus(doc.Status),
		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
		Events:    make([]schedule.Event, 0, len(doc.Events)),
	}
	if doc.StartDate != nil {
		t.StartDate = schedule.DateOf(doc.StartDate.UTC())
	}
	if doc.EndDate != nil {
		t.EndDate = schedule.DateOf(doc.EndDate.UTC())
	}
	for _, e := range doc.Events {
		startsAt := e.StartsAt.UTC()
		if e.UTCOffset != 0 {
			startsAt = startsAt.In(time.FixedZone("", e.UTCOffset))
		}
		t.Events = append(t.Events, schedule.Event{
			ID:        e.ID,
			TourID:    doc.ID,
			VenueID:   e.VenueID,
			StartsAt:  startsAt,
			Duration:  time.Duration(e.DurationSec) * time.Second,
			Status:    schedule.EventStatus(e.Status),
			Notes:     e.Notes,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}
	return t
}
