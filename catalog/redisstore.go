package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 60 * time.Second

// RedisStore keeps whole-collection snapshots as JSON blobs. Snapshots are
// replaced wholesale, never mutated in place.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "expotrack:snap:"}
}

func (r *RedisStore) key(name string) string { return r.prefix + name }

// GetSnapshot loads one snapshot; found is false on miss or decode failure.
func (r *RedisStore) GetSnapshot(ctx context.Context, name string, out any) (bool, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SetSnapshot stores one snapshot with the standard TTL.
func (r *RedisStore) SetSnapshot(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(name), data, snapshotTTL).Err()
}

// Drop removes snapshots by name.
func (r *RedisStore) Drop(ctx context.Context, names ...string) error {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = r.key(n)
	}
	return r.client.Del(ctx, keys...).Err()
}
