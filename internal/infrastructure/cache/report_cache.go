// Package cache implementa el caché opcional de reportes sobre Redis.
//
// Los reportes son deterministas sobre el snapshot inmutable, así que un
// reporte cacheado nunca queda obsoleto frente al dataset cargado; el TTL
// existe para liberar memoria, no por consistencia.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Ventas-api/internal/application/reports"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

var _ reports.Cache = (*ReportCache)(nil)

// ReportCache guarda reportes serializados a JSON en Redis con TTL.
// Best-effort: cualquier fallo de Redis degrada a calcular el reporte,
// nunca lo tumba.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewReportCache conecta a Redis y devuelve el caché de reportes.
func NewReportCache(cfg config.RedisConfig, log *logger.Logger) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	ttl := time.Duration(cfg.TTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ReportCache{client: client, ttl: ttl, log: log}, nil
}

// Get deserializa el reporte cacheado en dest. false = miss o Redis caído.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta, se recalcula")
		return false
	}
	return true
}

// Set serializa y guarda el reporte. Los fallos solo se registran.
func (c *ReportCache) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("serializar reporte para caché")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("guardar reporte en caché")
	}
}

// Close cierra la conexión a Redis.
func (c *ReportCache) Close() error {
	return c.client.Close()
}
