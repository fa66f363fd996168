package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"clinvetia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on (date, time) restricted to confirmed bookings is
// what makes the slot-conflict check race-safe: of two concurrent creates for
// the same slot, the second fails with a duplicate-key error at the store.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_confirmed_slot").
				SetPartialFilterExpression(bson.M{"status": models.BookingStatusConfirmed}),
		},
		{
			Keys:    bson.D{{Key: "sessionToken", Value: 1}, {Key: "status", Value: 1}, {Key: "demoExpiresAt", Value: 1}},
			Options: options.Index().SetName("session_active_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
