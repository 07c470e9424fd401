package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sorteios-backend/internal/common/logger"
	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/repository"
)

const (
	keyPrefixSorteio   = "sorteio:"
	keyPrefixGuildeSet = "sorteios:"
	publishLockSuffix  = ":publish_lock"
	publishLockTimeout = 30 * time.Second
)

type redisRepository struct {
	client *redis.Client
}

// NewRedisSorteioRepository builds the Redis-backed store. Entities are
// stored as JSON blobs with a per-guild index set.
func NewRedisSorteioRepository(client *redis.Client) repository.SorteioRepository {
	return &redisRepository{client: client}
}

func makeSorteioKey(id string) string {
	return keyPrefixSorteio + id
}

func makeGuildSetKey(botID, guildID string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefixGuildeSet, botID, guildID)
}

func (r *redisRepository) Create(ctx context.Context, sorteio *models.Sorteio) error {
	data, err := json.Marshal(sorteio)
	if err != nil {
		return fmt.Errorf("failed to marshal sorteio: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeSorteioKey(sorteio.ID), data, 0)
	pipe.SAdd(ctx, makeGuildSetKey(sorteio.BotID, sorteio.GuildID), sorteio.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.Sorteio, error) {
	data, err := r.client.Get(ctx, makeSorteioKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSorteioNotFound
	}
	if err != nil {
		return nil, err
	}

	var sorteio models.Sorteio
	if err := json.Unmarshal(data, &sorteio); err != nil {
		return nil, err
	}
	return &sorteio, nil
}

func (r *redisRepository) ListByGuild(ctx context.Context, botID, guildID string) ([]*models.Sorteio, error) {
	ids, err := r.client.SMembers(ctx, makeGuildSetKey(botID, guildID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Sorteio{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeSorteioKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sorteios := make([]*models.Sorteio, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a value: the blob expired or the delete
			// pipeline was interrupted. Drop the stale index member.
			r.client.SRem(ctx, makeGuildSetKey(botID, guildID), ids[i])
			continue
		}
		var sorteio models.Sorteio
		if err := json.Unmarshal([]byte(raw), &sorteio); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sorteio %s: %w", ids[i], err)
		}
		sorteios = append(sorteios, &sorteio)
	}
	return sorteios, nil
}

func (r *redisRepository) Update(ctx context.Context, sorteio *models.Sorteio) error {
	data, err := json.Marshal(sorteio)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, makeSorteioKey(sorteio.ID), data, 0).Err()
}

func (r *redisRepository) Delete(ctx context.Context, sorteio *models.Sorteio) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeSorteioKey(sorteio.ID))
	pipe.Del(ctx, makeSorteioKey(sorteio.ID)+publishLockSuffix)
	pipe.SRem(ctx, makeGuildSetKey(sorteio.BotID, sorteio.GuildID), sorteio.ID)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRepository) AcquirePublishLock(ctx context.Context, id string) (func(), error) {
	lockKey := makeSorteioKey(id) + publishLockSuffix

	ok, err := r.client.SetNX(ctx, lockKey, "locked", publishLockTimeout).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire publish lock: %w", err)
	}
	if !ok {
		return nil, repository.ErrLockHeld
	}

	release := func() {
		if err := r.client.Del(context.Background(), lockKey).Err(); err != nil {
			logger.Warn().Err(err).Str("sorteio_id", id).Msg("failed to release publish lock")
		}
	}
	return release, nil
}
