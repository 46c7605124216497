package repository

import (
	"context"
	"errors"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	activeWindowPast   = 4 * time.Hour
	activeWindowFuture = 24 * time.Hour
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	ctx := context.Background()

	// Unique index on the provider flight id
	faFlightIDIndex := mongo.IndexModel{
		Keys:    bson.M{"faFlightId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Compound index backing the active-window query
	activeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "cancelled", Value: 1},
			{Key: "actualIn", Value: 1},
			{Key: "scheduledOff", Value: 1},
		},
	}

	// Index for display ordering
	trackingSeqIndex := mongo.IndexModel{
		Keys: bson.M{"trackingSeq": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		faFlightIDIndex,
		activeIndex,
		trackingSeqIndex,
	})

	return &MongoFlightRepository{
		collection: collection,
	}
}

// FindActive returns the flights that should currently be polled: not
// cancelled, not yet arrived at the gate, scheduled takeoff within
// [now-4h, now+24h].
func (r *MongoFlightRepository) FindActive(ctx context.Context, now time.Time) ([]*entity.Flight, error) {
	filter := bson.M{
		"actualIn":  nil,
		"cancelled": false,
		"scheduledOff": bson.M{
			"$gte": now.Add(-activeWindowPast),
			"$lte": now.Add(activeWindowFuture),
		},
	}

	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Sort: bson.D{{Key: "trackingSeq", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flights []*entity.Flight
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}

	return flights, nil
}

// FindByID finds a flight by id; (nil, nil) when the record is gone
func (r *MongoFlightRepository) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	var flight entity.Flight
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// UpdateFields overwrites the mutable observation fields and returns the
// updated record. Identity, route and schedule fields are never touched.
func (r *MongoFlightRepository) UpdateFields(ctx context.Context, id string, update entity.FlightUpdate) (*entity.Flight, error) {
	set := bson.M{
		"status":          update.Status,
		"departureDelay":  update.DepartureDelay,
		"arrivalDelay":    update.ArrivalDelay,
		"actualOut":       update.ActualOut,
		"actualOff":       update.ActualOff,
		"actualOn":        update.ActualOn,
		"actualIn":        update.ActualIn,
		"cancelled":       update.Cancelled,
		"diverted":        update.Diverted,
		"gateOrigin":      update.GateOrigin,
		"progressPercent": update.ProgressPercent,
		"updatedAt":       time.Now(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated entity.Flight
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Insert stores a newly registered flight, assigning its tracking sequence
func (r *MongoFlightRepository) Insert(ctx context.Context, flight *entity.Flight) error {
	if flight.ID == "" {
		flight.ID = primitive.NewObjectID().Hex()
	}
	if flight.TrackingSeq == 0 {
		seq, err := r.NextTrackingSeq(ctx)
		if err != nil {
			return err
		}
		flight.TrackingSeq = seq
	}
	flight.CreatedAt = time.Now()
	flight.UpdatedAt = flight.CreatedAt

	_, err := r.collection.InsertOne(ctx, flight)
	return err
}

// NextTrackingSeq returns one past the highest assigned sequence number
func (r *MongoFlightRepository) NextTrackingSeq(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "trackingSeq", Value: -1}})
	var last entity.Flight
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.TrackingSeq + 1, nil
}
