package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ByLCY/sigstudio/internal/config"
	"github.com/ByLCY/sigstudio/signature"
)

// 持久化使用的固定键。
const (
	KeyProfiles = "signature_profiles"
	KeyLayouts  = "signature_layouts"
)

// Repository 在 KV 之上读写签名与布局快照。
type Repository struct {
	kv  KV
	log *slog.Logger
}

// NewRepository creates a repository over kv.
func NewRepository(kv KV, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{kv: kv, log: log}
}

// Profiles 读取签名列表。键不存在、内容损坏或列表为空时返回仅含默认签名的列表，
// 只有存储本身出错时才返回错误。
func (r *Repository) Profiles(ctx context.Context) ([]signature.Config, error) {
	data, err := r.kv.Get(ctx, KeyProfiles)
	if errors.Is(err, ErrNotFound) {
		return []signature.Config{signature.Default()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取签名失败: %w", err)
	}
	var profiles []signature.Config
	if err := json.Unmarshal(data, &profiles); err != nil {
		r.log.Warn("签名快照损坏，使用默认签名", "key", KeyProfiles, "error", err)
		return []signature.Config{signature.Default()}, nil
	}
	if len(profiles) == 0 {
		return []signature.Config{signature.Default()}, nil
	}
	return profiles, nil
}

// SaveProfiles 写入完整的签名列表。
func (r *Repository) SaveProfiles(ctx context.Context, profiles []signature.Config) error {
	return r.save(ctx, KeyProfiles, profiles)
}

// Layouts 读取已保存的布局。键不存在或内容损坏时返回空列表。
func (r *Repository) Layouts(ctx context.Context) ([]signature.Layout, error) {
	data, err := r.kv.Get(ctx, KeyLayouts)
	if errors.Is(err, ErrNotFound) {
		return []signature.Layout{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取布局失败: %w", err)
	}
	var layouts []signature.Layout
	if err := json.Unmarshal(data, &layouts); err != nil {
		r.log.Warn("布局快照损坏，忽略", "key", KeyLayouts, "error", err)
		return []signature.Layout{}, nil
	}
	if layouts == nil {
		layouts = []signature.Layout{}
	}
	return layouts, nil
}

// SaveLayouts 写入完整的布局列表。
func (r *Repository) SaveLayouts(ctx context.Context, layouts []signature.Layout) error {
	return r.save(ctx, KeyLayouts, layouts)
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("保存 %s 失败: %w", key, err)
	}
	return nil
}

// Open 按配置创建 KV。返回的 close 函数总是可以调用。
func Open(ctx context.Context, cfg config.StoreConfig) (KV, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), noop, nil
	case config.DriverFile:
		f, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil
	case config.DriverRedis:
		r, err := ConnectRedis(ctx, RedisOptions{URL: cfg.RedisURL, KeyPrefix: cfg.KeyPrefix})
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil
	default:
		return nil, noop, fmt.Errorf("未知的存储驱动 %q", cfg.Driver)
	}
}
