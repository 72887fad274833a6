package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/whatsport/whatsport-api/internal/models"
)

const spaceTTL = 5 * time.Minute

// SpaceCache is a read-through cache for Space documents. Spaces are read
// on every reservation and many event creates but change rarely. A nil
// *SpaceCache disables caching entirely.
type SpaceCache struct {
	rdb *redis.Client
}

func NewSpaceCache(addr string) *SpaceCache {
	if addr == "" {
		return nil
	}
	return &SpaceCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *SpaceCache) Get(ctx context.Context, id string) (*models.Space, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(id)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("space cache get:", err)
		}
		return nil, false
	}

	var space models.Space
	if err := json.Unmarshal([]byte(raw), &space); err != nil {
		return nil, false
	}
	return &space, true
}

func (c *SpaceCache) Set(ctx context.Context, space *models.Space) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(space)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(space.ID), raw, spaceTTL).Err(); err != nil {
		log.Println("space cache set:", err)
	}
}

func (c *SpaceCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		log.Println("space cache invalidate:", err)
	}
}

func key(id string) string {
	return "space:" + id
}
