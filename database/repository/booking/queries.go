package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinvetia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetConfirmedBySlot returns the confirmed booking holding (date, time), or nil.
func (repo *MongoBookingRepo) GetConfirmedBySlot(ctx context.Context, date, slot string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time": slot, "status": models.BookingStatusConfirmed}
	var booking models.Booking
	err := repo.coll.FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking for slot %s %s: %w", date, slot, err)
	}
	return &booking, nil
}

// GetActiveBySession returns the most recent booking that still holds a slot
// for sessionToken, or nil when the session has none.
func (repo *MongoBookingRepo) GetActiveBySession(ctx context.Context, sessionToken string, now time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"sessionToken":  sessionToken,
		"status":        bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
		"demoExpiresAt": bson.M{"$gt": now},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var booking models.Booking
	err := repo.coll.FindOne(ctx, filter, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching active booking for session: %w", err)
	}
	return &booking, nil
}

// ListConfirmedByDate returns every confirmed booking on the given calendar day.
func (repo *MongoBookingRepo) ListConfirmedByDate(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "status": models.BookingStatusConfirmed}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings for %s: %w", date, err)
	}
	return bookings, nil
}

// ListMissingMeetLink returns every booking that has no meeting link yet.
func (repo *MongoBookingRepo) ListMissingMeetLink(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"googleMeetLink": bson.M{"$exists": false}},
		{"googleMeetLink": ""},
	}}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings without meet link: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings without meet link: %w", err)
	}
	return bookings, nil
}

// BulkSetMeetLinks writes meeting links in one unordered bulk update: a failed
// row does not block the unrelated ones, and rerunning is a no-op for rows
// already carrying their link.
func (repo *MongoBookingRepo) BulkSetMeetLinks(ctx context.Context, links map[string]string) (int64, error) {
	if len(links) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(links))
	for id, link := range links {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"id": id}).
			SetUpdate(bson.M{"$set": bson.M{"googleMeetLink": link}}))
	}

	res, err := repo.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("error bulk writing meet links: %w", err)
	}
	return res.ModifiedCount, nil
}
