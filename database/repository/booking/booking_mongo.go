package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinvetia/database"
	"clinvetia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{coll: database.DB().Collection("bookings")}
}

// IsDuplicateKey reports whether err is a unique-index violation, i.e. a
// second writer lost the slot race at the storage layer.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// Expire marks the booking expired, detaches the session token and collapses
// every expiry timestamp to now so cached client countdowns read as expired.
func (repo *MongoBookingRepo) Expire(ctx context.Context, bookingID string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":        models.BookingStatusExpired,
			"expiresAt":     now,
			"formExpiresAt": now,
			"demoExpiresAt": now,
		},
		"$unset": bson.M{"sessionToken": ""},
	}
	_, err := repo.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error expiring booking %s: %w", bookingID, err)
	}
	return nil
}

// SetStatus updates only the status field.
func (repo *MongoBookingRepo) SetStatus(ctx context.Context, bookingID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	return nil
}

// AppendEmailEvent pushes one entry onto the booking's notification log.
func (repo *MongoBookingRepo) AppendEmailEvent(ctx context.Context, bookingID string, event models.EmailEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$push": bson.M{"emailEvents": event}}
	_, err := repo.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error appending email event to booking %s: %w", bookingID, err)
	}
	return nil
}
