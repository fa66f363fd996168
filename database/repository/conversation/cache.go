package conversationRepo

import (
	"context"
	"encoding/json"
	"time"

	"clinvetia/models"
	"clinvetia/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "wa:conv:"
	cacheTTL       = 30 * time.Minute
)

// CachedConversationRepo layers a short-TTL Redis cache over the Mongo store.
// Inbound webhook bursts for the same phone hit the cache instead of Mongo;
// any cache trouble falls back to the inner store.
type CachedConversationRepo struct {
	inner ConversationRepository
	cache *redis.Client
}

// NewCachedConversationRepo wraps inner with the generic cache client.
func NewCachedConversationRepo(inner ConversationRepository, cache *redis.Client) ConversationRepository {
	return &CachedConversationRepo{inner: inner, cache: cache}
}

func (r *CachedConversationRepo) GetByPhone(ctx context.Context, phone string) (*models.WhatsAppConversation, error) {
	if raw, err := r.cache.Get(ctx, cacheKeyPrefix+phone).Bytes(); err == nil {
		var conv models.WhatsAppConversation
		if err := json.Unmarshal(raw, &conv); err == nil {
			return &conv, nil
		}
	} else if err != redis.Nil {
		utils.GetLogger().Warn("conversation cache read failed",
			zap.String("phone", phone), zap.Error(err))
	}

	conv, err := r.inner.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		r.prime(ctx, conv)
	}
	return conv, nil
}

func (r *CachedConversationRepo) Upsert(ctx context.Context, conv *models.WhatsAppConversation) error {
	if err := r.inner.Upsert(ctx, conv); err != nil {
		return err
	}
	r.prime(ctx, conv)
	return nil
}

func (r *CachedConversationRepo) EnsureIndexes() error {
	return r.inner.EnsureIndexes()
}

func (r *CachedConversationRepo) prime(ctx context.Context, conv *models.WhatsAppConversation) {
	raw, err := json.Marshal(conv)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKeyPrefix+conv.Phone, raw, cacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("conversation cache write failed",
			zap.String("phone", conv.Phone), zap.Error(err))
	}
}
