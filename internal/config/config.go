package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `envPrefix:"SERVER_"`
	Logging LoggingConfig `envPrefix:"LOG_"`
	Store   StoreConfig   `envPrefix:"STORE_"`
	Suggest SuggestConfig `envPrefix:"SUGGEST_"`
	Logo    LogoConfig    `envPrefix:"LOGO_"`
	Render  RenderConfig  `envPrefix:"RENDER_"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr 返回监听地址。
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `env:"LEVEL" envDefault:"info"`
	Format        string `env:"FORMAT" envDefault:"text"` // text|json
	IncludeCaller bool   `env:"INCLUDE_CALLER" envDefault:"false"`
}

// 存储驱动。
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// StoreConfig 选择快照的持久化方式。
type StoreConfig struct {
	Driver    string `env:"DRIVER" envDefault:"file"`
	Dir       string `env:"DIR" envDefault:"./data"`
	RedisURL  string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"sigstudio:"`
}

// AI 建议的提供方。
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// SuggestConfig 控制页脚关键词的生成。
type SuggestConfig struct {
	Provider     string        `env:"PROVIDER" envDefault:"none"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string        `env:"OPENAI_API_KEY"`
	Model        string        `env:"MODEL"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"15s"`
	Fallback     string        `env:"FALLBACK" envDefault:"Vente - Location - Gestion - Syndic"`
	Prompt       string        `env:"PROMPT"` // 为空时使用内置提示词
}

// LogoConfig 限制上传的 logo。
type LogoConfig struct {
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"2097152"`
}

// RenderConfig 控制预览渲染。
type RenderConfig struct {
	DPMM       float64 `env:"DPMM" envDefault:"7.559"`
	FontFamily string  `env:"FONT_FAMILY" envDefault:"Arial, Helvetica, sans-serif"`
	AssetsDir  string  `env:"ASSETS_DIR" envDefault:"."`
}

// Load 读取 .env（可选）与环境变量。files 为空时尝试当前目录的 .env。
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("读取 .env 失败: %w", err)
	}
	return parse(env.Options{})
}

// LoadFrom 只从给定的变量表解析配置，不读取进程环境。
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("解析环境变量失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查取值范围与枚举。
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("端口 %d 超出范围", c.HTTP.Port)
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("未知的存储驱动 %q", c.Store.Driver)
	}
	c.Suggest.Provider = strings.ToLower(strings.TrimSpace(c.Suggest.Provider))
	switch c.Suggest.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	case "":
		c.Suggest.Provider = ProviderNone
	default:
		return fmt.Errorf("未知的建议提供方 %q", c.Suggest.Provider)
	}
	if c.Logo.MaxBytes <= 0 {
		return fmt.Errorf("logo 大小上限必须为正数")
	}
	if c.Render.DPMM <= 0 {
		return fmt.Errorf("DPMM 必须为正数")
	}
	return nil
}
