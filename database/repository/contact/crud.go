package contactRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinvetia/database"
	"clinvetia/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContactRepo implements ContactRepository using MongoDB.
type MongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo constructs a new instance of MongoContactRepo.
func NewMongoContactRepo() ContactRepository {
	return &MongoContactRepo{coll: database.DB().Collection("contacts")}
}

// Create inserts a new contact document. Duplicate emails are allowed by
// design; read paths pick the most recent match.
func (repo *MongoContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	_, err := repo.coll.InsertOne(ctx, contact)
	if err != nil {
		return fmt.Errorf("error creating contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact by its ID, or nil when absent.
func (repo *MongoContactRepo) GetByID(ctx context.Context, contactID string) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var contact models.Contact
	err := repo.coll.FindOne(ctx, bson.M{"id": contactID}).Decode(&contact)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching contact %s: %w", contactID, err)
	}
	return &contact, nil
}

// ListByBooking returns contacts linked to a booking, newest first.
func (repo *MongoContactRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Contact, error) {
	return repo.list(ctx, bson.M{"bookingId": bookingID})
}

// ListBySession returns contacts linked to a session token, newest first.
func (repo *MongoContactRepo) ListBySession(ctx context.Context, sessionToken string) ([]models.Contact, error) {
	return repo.list(ctx, bson.M{"sessionToken": sessionToken})
}

// ExistsBySession reports whether any contact already carries the session
// token, which is what marks a caller as a registered client.
func (repo *MongoContactRepo) ExistsBySession(ctx context.Context, sessionToken string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{"sessionToken": sessionToken}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting contacts for session: %w", err)
	}
	return count > 0, nil
}

// ClearROI nulls every ROI subfield on the given contact ids.
func (repo *MongoContactRepo) ClearROI(ctx context.Context, filterIDs []string) (int64, error) {
	if len(filterIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"roi.monthlyPatients": nil,
		"roi.averageTicket":   nil,
		"roi.conversionLoss":  nil,
		"roi.roi":             nil,
	}}
	res, err := repo.coll.UpdateMany(ctx, bson.M{"id": bson.M{"$in": filterIDs}}, update)
	if err != nil {
		return 0, fmt.Errorf("error clearing contact ROI: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete removes a contact row.
func (repo *MongoContactRepo) Delete(ctx context.Context, contactID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": contactID})
	if err != nil {
		return fmt.Errorf("error deleting contact %s: %w", contactID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the lookup indexes for the soft foreign keys.
func (repo *MongoContactRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("booking_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "sessionToken", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("session_created_idx"),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create contact indexes: %w", err)
	}
	return nil
}

func (repo *MongoContactRepo) list(ctx context.Context, filter bson.M) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("error decoding contacts: %w", err)
	}
	return contacts, nil
}
