package suggest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel 为 Gemini 的默认模型。
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini 使用 Google Generative AI 生成页脚关键词。
type Gemini struct {
	client     *genai.Client
	model      string
	prompt     string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption is a functional option for configuring Gemini.
type GeminiOption func(*Gemini)

// WithGeminiModel sets the model to use.
func WithGeminiModel(model string) GeminiOption {
	return func(g *Gemini) {
		g.model = model
	}
}

// WithGeminiPrompt 设置提示词模板，空字符串保留默认模板。
func WithGeminiPrompt(prompt string) GeminiOption {
	return func(g *Gemini) {
		if strings.TrimSpace(prompt) != "" {
			g.prompt = prompt
		}
	}
}

// WithGeminiBaseURL overrides the API endpoint.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		g.baseURL = url
	}
}

// WithGeminiHTTPClient sets a custom HTTP client.
func WithGeminiHTTPClient(client *http.Client) GeminiOption {
	return func(g *Gemini) {
		g.httpClient = client
	}
}

// NewGemini creates a Gemini suggester with API key authentication.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	g := &Gemini{model: DefaultGeminiModel, prompt: DefaultPrompt}
	for _, opt := range opts {
		opt(g)
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Suggest(ctx context.Context, businessType string) (string, error) {
	if strings.TrimSpace(businessType) == "" {
		return "", ErrEmptyBusinessType
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(g.prompt, businessType)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
