package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions 配置 Redis 连接。
type RedisOptions struct {
	URL           string
	KeyPrefix     string
	RetryAttempts int
	RetryInterval time.Duration
}

// Redis 以字符串键保存快照，键名带统一前缀。
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis 包装已有的客户端。
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// ConnectRedis 解析 URL 并在重试次数内等待 PING 成功。
func ConnectRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		return nil, ErrEmptyConnectionURL
	}
	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("解析 redis 地址失败: %w", err)
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = time.Second
	}

	client := redis.NewClient(parsed)
	var pingErr error
	for attempt := 0; attempt < opts.RetryAttempts; attempt++ {
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return NewRedis(client, opts.KeyPrefix), nil
		}
		if attempt == opts.RetryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(opts.RetryInterval):
		}
	}
	client.Close()
	return nil, errors.Join(ErrRedisNotReady, pingErr)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s 失败: %w", key, err)
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s 失败: %w", key, err)
	}
	return nil
}

// Close 关闭底层连接。
func (r *Redis) Close() error {
	return r.client.Close()
}
