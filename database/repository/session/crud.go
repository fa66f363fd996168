package sessionRepo

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

// SessionRepository defines persistence operations for ROI sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// DeleteByTokens removes every session whose token is in the set and
	// returns the deleted count. Missing tokens are not an error.
	DeleteByTokens(ctx context.Context, tokens []string) (int64, error)
	EnsureIndexes() error
}

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	return &MongoSessionRepo{coll: database.DB().Collection("sessions")}
}

// Create inserts a new session document.
func (repo *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByToken retrieves a session by its opaque token, or nil when absent.
func (repo *MongoSessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := repo.coll.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching session: %w", err)
	}
	return &session, nil
}

// DeleteByTokens removes every session in the token set.
func (repo *MongoSessionRepo) DeleteByTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteMany(ctx, bson.M{"token": bson.M{"$in": tokens}})
	if err != nil {
		return 0, fmt.Errorf("error deleting sessions: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the token lookup index plus a TTL index so orphaned
// sessions self-expire even when a cascade misses them.
func (repo *MongoSessionRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_token"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_ttl"),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
