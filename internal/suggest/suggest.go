package suggest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ByLCY/sigstudio/binding"
	"github.com/ByLCY/sigstudio/internal/config"
)

// DefaultFallback 为任何失败时返回的页脚关键词。
const DefaultFallback = "Vente - Location - Gestion - Syndic"

// DefaultPrompt 为生成页脚关键词的提示词模板，${businessType} 为行业描述。
const DefaultPrompt = "Propose une courte liste de services (3 à 5 mots clés séparés par des tirets) " +
	"pour une signature d'e-mail pour un professionnel travaillant dans le secteur suivant : ${businessType}. " +
	"Réponds uniquement avec la liste de mots clés, sans phrase autour. Exemple: " + DefaultFallback

// Suggester 根据行业描述生成以 " - " 分隔的页脚关键词。
type Suggester interface {
	Suggest(ctx context.Context, businessType string) (string, error)
}

// BuildPrompt 用行业描述填充提示词模板；模板为空时使用 DefaultPrompt。
func BuildPrompt(template, businessType string) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultPrompt
	}
	return binding.Interpolate(template, map[string]any{"businessType": strings.TrimSpace(businessType)})
}

var (
	keywordSeparators = regexp.MustCompile(`\s+[-–—|•·]\s+|[,;\n•·|]+|\s[-–—]|[-–—]\s`)
	keywordTrim       = "\"'`*.:» «“”\t "
)

// NormalizeKeywords 清洗模型输出：统一分隔符为 " - "，去掉引号、项目符号与空段。
func NormalizeKeywords(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// 只取第一段非空内容，模型偶尔会在后面附上解释
	if i := strings.Index(raw, "\n\n"); i > 0 {
		raw = raw[:i]
	}
	var parts []string
	for _, p := range keywordSeparators.Split(raw, -1) {
		p = strings.Trim(p, keywordTrim)
		p = strings.TrimLeft(p, "-–— ")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

// Static 总是返回固定文本，用于未配置提供方的场景。
type Static struct {
	Text string
}

func (s Static) Suggest(context.Context, string) (string, error) {
	if strings.TrimSpace(s.Text) == "" {
		return "", ErrEmptyResponse
	}
	return s.Text, nil
}

// Fallback 包装一个 Suggester：任何错误、超时或空结果都转换为固定的回退文本，从不返回错误。
type Fallback struct {
	next     Suggester
	fallback string
	timeout  time.Duration
	log      *slog.Logger
}

// WithFallback wraps s. timeout <= 0 disables the per-call deadline.
func WithFallback(s Suggester, fallback string, timeout time.Duration, log *slog.Logger) *Fallback {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallback
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fallback{next: s, fallback: fallback, timeout: timeout, log: log}
}

func (f *Fallback) Suggest(ctx context.Context, businessType string) (string, error) {
	if f.next == nil {
		return f.fallback, nil
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	out, err := f.next.Suggest(ctx, businessType)
	if err != nil {
		f.log.Warn("页脚建议失败，使用默认值", "business_type", businessType, "error", err)
		return f.fallback, nil
	}
	out = NormalizeKeywords(out)
	if out == "" {
		f.log.Warn("页脚建议为空，使用默认值", "business_type", businessType)
		return f.fallback, nil
	}
	return out, nil
}

// New 按配置创建带回退的 Suggester。
func New(ctx context.Context, cfg config.SuggestConfig, log *slog.Logger) (*Fallback, error) {
	if err := checkPrompt(cfg.Prompt); err != nil {
		return nil, err
	}
	var next Suggester
	switch cfg.Provider {
	case config.ProviderNone, "":
		next = Static{Text: cfg.Fallback}
	case config.ProviderGemini:
		opts := []GeminiOption{WithGeminiPrompt(cfg.Prompt)}
		if cfg.Model != "" {
			opts = append(opts, WithGeminiModel(cfg.Model))
		}
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, opts...)
		if err != nil {
			return nil, err
		}
		next = g
	case config.ProviderOpenAI:
		opts := []OpenAIOption{WithOpenAIPrompt(cfg.Prompt)}
		if cfg.Model != "" {
			opts = append(opts, WithOpenAIModel(cfg.Model))
		}
		o, err := NewOpenAI(cfg.OpenAIAPIKey, opts...)
		if err != nil {
			return nil, err
		}
		next = o
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
	return WithFallback(next, cfg.Fallback, cfg.Timeout, log), nil
}

// checkPrompt 要求自定义提示词引用 ${businessType}，否则行业描述不会出现在请求中。
func checkPrompt(template string) error {
	if strings.TrimSpace(template) == "" {
		return nil
	}
	if !slices.Contains(binding.Fields(template), "businessType") {
		return ErrPromptMissingField
	}
	return nil
}
