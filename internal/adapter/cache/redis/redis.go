package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vadimbarashkov/link-shortener/internal/entity"
)

const keyPrefix = "link:"

type linkJSON struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func fromEntity(link *entity.Link) linkJSON {
	return linkJSON{
		ID:          link.ID,
		UserID:      link.UserID,
		OriginalURL: link.OriginalURL,
		ShortCode:   link.ShortCode,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
}

func (l *linkJSON) toEntity() *entity.Link {
	return &entity.Link{
		ID:          l.ID,
		UserID:      l.UserID,
		OriginalURL: l.OriginalURL,
		ShortCode:   l.ShortCode,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func key(shortCode string) string {
	return keyPrefix + shortCode
}

// Entries are hashes holding the encoded link and its version
// (updated_at in microseconds). A fill carrying an older version than the
// stored one is dropped, and a deleted link leaves a tombstone that refuses
// fills until it expires, so a reader racing a write cannot cache a stale row.
var (
	setScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], 'deleted') == 1 then
	return 0
end
local cur = redis.call('HGET', KEYS[1], 'version')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'link', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

	deleteScript = redis.NewScript(`
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'deleted', '1')
redis.call('PEXPIRE', KEYS[1], ARGV[1])
return 1
`)
)

// LinkCache keeps links keyed by short code in redis.
type LinkCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewLinkCache(client redis.Cmdable, ttl time.Duration) *LinkCache {
	return &LinkCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *LinkCache) Get(ctx context.Context, shortCode string) (*entity.Link, error) {
	const op = "adapter.cache.redis.LinkCache.Get"

	data, err := c.client.HGet(ctx, key(shortCode), "link").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrCacheMiss)
		}

		return nil, fmt.Errorf("%s: failed to get link: %w", op, err)
	}

	var link linkJSON
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("%s: failed to decode link: %w", op, err)
	}

	return link.toEntity(), nil
}

// Set stores link unless the cache already holds a newer version of it or
// the short code was deleted within the TTL.
func (c *LinkCache) Set(ctx context.Context, link *entity.Link) error {
	const op = "adapter.cache.redis.LinkCache.Set"

	data, err := json.Marshal(fromEntity(link))
	if err != nil {
		return fmt.Errorf("%s: failed to encode link: %w", op, err)
	}

	err = setScript.Run(ctx, c.client,
		[]string{key(link.ShortCode)},
		link.UpdatedAt.UnixMicro(), string(data), c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("%s: failed to set link: %w", op, err)
	}

	return nil
}

// Delete drops the cached link and leaves a tombstone for the TTL.
func (c *LinkCache) Delete(ctx context.Context, shortCode string) error {
	const op = "adapter.cache.redis.LinkCache.Delete"

	err := deleteScript.Run(ctx, c.client, []string{key(shortCode)}, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("%s: failed to delete link: %w", op, err)
	}

	return nil
}
