package suggest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel 为 OpenAI 的默认模型。
const DefaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAI 使用 chat completions 生成页脚关键词。
type OpenAI struct {
	client openai.Client
	model  string
	prompt string
}

// OpenAIOption is a functional option for configuring OpenAI.
type OpenAIOption func(*openAIOptions)

type openAIOptions struct {
	model   string
	prompt  string
	request []option.RequestOption
}

// WithOpenAIModel sets the model to use.
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *openAIOptions) {
		o.model = model
	}
}

// WithOpenAIPrompt 设置提示词模板，空字符串保留默认模板。
func WithOpenAIPrompt(prompt string) OpenAIOption {
	return func(o *openAIOptions) {
		if strings.TrimSpace(prompt) != "" {
			o.prompt = prompt
		}
	}
}

// WithOpenAIBaseURL overrides the API endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(o *openAIOptions) {
		o.request = append(o.request, option.WithBaseURL(url))
	}
}

// WithOpenAIHTTPClient sets a custom HTTP client.
func WithOpenAIHTTPClient(client *http.Client) OpenAIOption {
	return func(o *openAIOptions) {
		if client != nil {
			o.request = append(o.request, option.WithHTTPClient(client))
		}
	}
}

// NewOpenAI creates an OpenAI suggester.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	o := &openAIOptions{model: DefaultOpenAIModel, prompt: DefaultPrompt}
	for _, opt := range opts {
		opt(o)
	}
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(1)}, o.request...)
	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  o.model,
		prompt: o.prompt,
	}, nil
}

func (o *OpenAI) Suggest(ctx context.Context, businessType string) (string, error) {
	if strings.TrimSpace(businessType) == "" {
		return "", ErrEmptyBusinessType
	}
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(o.prompt, businessType)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
