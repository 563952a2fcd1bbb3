package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

const keyPrefix = "creator_profile_"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
	TTL      time.Duration // 0 keeps entries until overwritten
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg RedisConfig) *RedisCache {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return NewRedisCacheWithClient(redis.NewClient(opts), cfg.TTL)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, id string) (*domain.Profile, error) {
	val, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	decompressed, err := decompress(val)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if decompressed == nil {
		return nil, nil
	}

	var profile domain.Profile
	if err := json.Unmarshal(decompressed, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *RedisCache) Set(ctx context.Context, id string, profile *domain.Profile) error {
	val, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	compressed, err := compress(val)
	if err != nil {
		return fmt.Errorf("failed to compress: %w", err)
	}

	return r.client.Set(ctx, keyPrefix+id, compressed, r.ttl).Err()
}

func compress(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

var _ ports.ProfileCache = (*RedisCache)(nil)
