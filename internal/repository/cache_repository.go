package repository

import (
	"access-request-server/config"
	"access-request-server/internal/model"
	"access-request-server/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetRecord(ctx context.Context, record *model.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return util.LogError("[CacheRepo] ошибка сериализации записи", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(record.ID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("[CacheRepo] ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	val, err := r.client.Client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("[CacheRepo] ошибка получения записи из Redis", err)
	}

	var record model.Record
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, util.LogError("[CacheRepo] ошибка десериализации записи из кэша", err)
	}
	return &record, nil
}

func (r *CacheRepository) key(id int64) string {
	return fmt.Sprintf("record:%d", id)
}
