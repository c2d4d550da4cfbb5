package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AccessTokenCache conserve l'access token OAuth2 jusqu'à peu avant son expiration
type AccessTokenCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryTokenCache est un cache local au processus
type MemoryTokenCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryTokenCache crée un cache vide
func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get retourne le token s'il n'a pas expiré
func (c *MemoryTokenCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return "", false, nil
	}
	return entry.token, true, nil
}

// Set mémorise le token pour la durée ttl
func (c *MemoryTokenCache) Set(_ context.Context, key, token string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{token: token, expiresAt: c.now().Add(ttl)}
	return nil
}

// RedisTokenCache partage l'access token entre plusieurs instances du service
type RedisTokenCache struct {
	client *redis.Client
	prefix string
}

// NewRedisTokenCache crée un cache Redis
func NewRedisTokenCache(addr, password string, db int) *RedisTokenCache {
	return NewRedisTokenCacheFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewRedisTokenCacheFromClient réutilise un client Redis existant
func NewRedisTokenCacheFromClient(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{
		client: client,
		prefix: "push:access_token:",
	}
}

// Ping vérifie la connexion Redis
func (c *RedisTokenCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get lit le token ; une clé absente n'est pas une erreur
func (c *RedisTokenCache) Get(ctx context.Context, key string) (string, bool, error) {
	token, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("erreur lors de la lecture du cache Redis: %w", err)
	}
	return token, true, nil
}

// Set écrit le token avec une expiration Redis
func (c *RedisTokenCache) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, token, ttl).Err(); err != nil {
		return fmt.Errorf("erreur lors de l'écriture du cache Redis: %w", err)
	}
	return nil
}

// Close ferme le client Redis
func (c *RedisTokenCache) Close() error {
	return c.client.Close()
}
