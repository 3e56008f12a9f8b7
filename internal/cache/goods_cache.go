package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"order-service/internal/models"
	"order-service/internal/repository"

	"github.com/redis/go-redis/v9"
)

// CachedGoodsRepository puts a read-through Redis cache in front of the
// goods search. Any Redis problem falls back to the database.
type CachedGoodsRepository struct {
	realRepo repository.GoodsRepository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedGoodsRepository(realRepo repository.GoodsRepository, redis *redis.Client) *CachedGoodsRepository {
	return &CachedGoodsRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      5 * time.Minute,
	}
}

func (c *CachedGoodsRepository) GetByID(ctx context.Context, id int) (*models.Good, error) {
	key := fmt.Sprintf("good:%d", id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		var good models.Good
		if err := json.Unmarshal(data, &good); err != nil {
			log.Printf("Failed to unmarshal cached good (continuing with DB): %v", err)
			break
		}
		return &good, nil

	case err == redis.Nil:

	default:
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	good, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(good)
	if err != nil {
		log.Printf("failed to marshal good: %v", err)
	} else {
		c.redis.Set(ctx, key, jsonData, c.ttl)
	}

	return good, nil
}

func (c *CachedGoodsRepository) Search(ctx context.Context, query string, limit int) ([]models.Good, error) {
	if query == "" {
		return []models.Good{}, nil
	}

	key := fmt.Sprintf("goods:search:%s", strings.ToLower(query))

	data, err := c.redis.Get(ctx, key).Bytes()

	if err == nil {
		var goods []models.Good
		if err := json.Unmarshal(data, &goods); err == nil {
			return goods, nil
		}
		log.Printf("Failed to unmarshal cached search (continuing with DB): %v", err)
	} else if err != redis.Nil {
		log.Printf("Redis error (continuing with DB): %v", err)
	}

	goods, err := c.realRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(goods)
	if err != nil {
		log.Printf("failed to marshal goods: %v", err)
	} else {
		c.redis.Set(ctx, key, jsonData, c.ttl)
	}

	return goods, nil
}
