package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aionlab/aion-backend/config"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken adds a token to the blacklist
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}
	logger.Debug("Adding token to blacklist", map[string]interface{}{
		"expiry": expiry.String(),
	})

	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}

	logger.Debug("Token successfully blacklisted", nil)
	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}
	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}

	return val == "revoked", nil
}

// activeContentKey builds the cache key for the active version of a content type
func activeContentKey(contentType, kind string) string {
	if kind == "" {
		return fmt.Sprintf("content:active:%s", contentType)
	}
	return fmt.Sprintf("content:active:%s:%s", contentType, kind)
}

// GetActiveContent returns the cached active content snapshot (JSON), if any.
// When Redis is not configured the cache behaves as always-miss.
func GetActiveContent(ctx context.Context, contentType, kind string) (string, bool, error) {
	if client == nil {
		return "", false, nil
	}
	val, err := client.Get(ctx, activeContentKey(contentType, kind)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to read active content cache", err, map[string]interface{}{
			"content_type": contentType,
			"kind":         kind,
		})
		return "", false, err
	}
	return val, true, nil
}

// SetActiveContent caches the active content snapshot (JSON)
func SetActiveContent(ctx context.Context, contentType, kind, payload string, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	if err := client.Set(ctx, activeContentKey(contentType, kind), payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache active content", err, map[string]interface{}{
			"content_type": contentType,
			"kind":         kind,
		})
		return err
	}
	return nil
}

// InvalidateActiveContent drops the cached snapshot after an activation or edit
func InvalidateActiveContent(ctx context.Context, contentType, kind string) error {
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, activeContentKey(contentType, kind)).Err(); err != nil {
		logger.Error("Failed to invalidate active content cache", err, map[string]interface{}{
			"content_type": contentType,
			"kind":         kind,
		})
		return err
	}

	logger.Debug("Active content cache invalidated", map[string]interface{}{
		"content_type": contentType,
		"kind":         kind,
	})
	return nil
}
