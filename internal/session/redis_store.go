package session

import (
	"context"
	"encoding/json"

	"scholarhub-client/internal/common/database"
	"scholarhub-client/internal/models"
)

// RedisStore keeps the pair in redis, for shared-workstation deployments
// where several kiosk clients hand sessions around.
type RedisStore struct {
	rdb *database.RedisClient
	key string
}

func NewRedisStore(rdb *database.RedisClient, namespace, clientID string) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		key: namespace + ":tokens:" + clientID,
	}
}

func (s *RedisStore) Save(ctx context.Context, pair *models.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, string(data), 0)
}

func (s *RedisStore) Load(ctx context.Context) *models.TokenPair {
	raw, err := s.rdb.Get(ctx, s.key)
	if err != nil {
		// redis.Nil and transport failures alike read as "no session".
		return nil
	}
	var pair models.TokenPair
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return nil
	}
	if pair.Empty() {
		return nil
	}
	return &pair
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key)
}
