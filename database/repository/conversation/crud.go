package conversationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinvetia/database"
	"clinvetia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository defines persistence for per-phone WhatsApp state.
type ConversationRepository interface {
	GetByPhone(ctx context.Context, phone string) (*models.WhatsAppConversation, error)
	// Upsert writes the full conversation state keyed by phone number.
	// Last write wins; there is no per-phone lock.
	Upsert(ctx context.Context, conv *models.WhatsAppConversation) error
	EnsureIndexes() error
}

// MongoConversationRepo implements ConversationRepository using MongoDB.
type MongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo constructs a new instance of MongoConversationRepo.
func NewMongoConversationRepo() ConversationRepository {
	return &MongoConversationRepo{coll: database.DB().Collection("whatsapp_conversations")}
}

// GetByPhone retrieves the conversation for a phone number, or nil when the
// number has never written.
func (repo *MongoConversationRepo) GetByPhone(ctx context.Context, phone string) (*models.WhatsAppConversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var conv models.WhatsAppConversation
	err := repo.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching conversation for %s: %w", phone, err)
	}
	return &conv, nil
}

// Upsert replaces the conversation document keyed by phone.
func (repo *MongoConversationRepo) Upsert(ctx context.Context, conv *models.WhatsAppConversation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := repo.coll.ReplaceOne(ctx, bson.M{"phone": conv.Phone}, conv, opts)
	if err != nil {
		return fmt.Errorf("error upserting conversation for %s: %w", conv.Phone, err)
	}
	return nil
}

// EnsureIndexes creates the unique phone index.
func (repo *MongoConversationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_phone"),
	}
	if _, err := repo.coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}
	return nil
}
