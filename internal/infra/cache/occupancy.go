package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OccupancyCache guarda o resultado da consulta de horários ocupados por
// (sala, data, tipo). Falha de cache nunca falha a requisição: miss cai
// no banco e segue.
type OccupancyCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewOccupancyCache(addr, password string, logger *zap.Logger) *OccupancyCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	return &OccupancyCache{
		rdb:    rdb,
		ttl:    2 * time.Minute,
		logger: logger,
	}
}

func key(room, date, tipo string) string {
	return fmt.Sprintf("occupied:%s:%s:%s", room, date, tipo)
}

func (c *OccupancyCache) Get(ctx context.Context, room, date, tipo string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, key(room, date, tipo)).Result()
	if err != nil {
		return nil, false
	}

	var hours []string
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, false
	}
	return hours, true
}

func (c *OccupancyCache) Set(ctx context.Context, room, date, tipo string, hours []string) {
	raw, err := json.Marshal(hours)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(room, date, tipo), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("occupancy cache set failed", zap.Error(err))
	}
}

// Invalidate remove as entradas da sala para as datas tocadas por uma
// escrita (criação ou transição de status).
func (c *OccupancyCache) Invalidate(ctx context.Context, room string, dates []string) {
	keys := make([]string, 0, len(dates)*3)
	for _, d := range dates {
		keys = append(keys,
			key(room, d, ""),
			key(room, d, "sala"),
			key(room, d, "computador"),
		)
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("occupancy cache invalidate failed", zap.Error(err))
	}
}

func (c *OccupancyCache) Close() error {
	return c.rdb.Close()
}
