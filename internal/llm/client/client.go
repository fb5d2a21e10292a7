package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	openaiacl "github.com/cloudwego/eino-ext/libs/acl/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// CompletionOptions are the per-call knobs forwarded to the provider.
// Zero values leave the model's own defaults in place.
type CompletionOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// TextCompleter is the request/response contract the generation and
// evaluation services consume. Transport and provider errors surface
// unchanged; retries are the caller's responsibility.
type TextCompleter interface {
	Complete(ctx context.Context, messages []*schema.Message, opts CompletionOptions) (string, error)
}

// LLMClient wraps an eino chat model for a single provider.
type LLMClient struct {
	chatModel  model.BaseChatModel
	providerID string
}

// OpenAIModelOptions configures an OpenAI-backed client. JSONResponse
// requests the provider's JSON object response format, used by the
// evaluator.
type OpenAIModelOptions struct {
	Model        string
	JSONResponse bool
}

// ClaudeModelOptions configures an Anthropic-backed client.
type ClaudeModelOptions struct {
	Model     string
	MaxTokens int
}

// GeminiModelOptions configures a Gemini-backed client.
type GeminiModelOptions struct {
	Model string
}

func NewOpenAIClient(ctx context.Context, apiKey string, opts OpenAIModelOptions) (*LLMClient, error) {
	cfg := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  opts.Model,
	}
	if opts.JSONResponse {
		cfg.ResponseFormat = &openaiacl.ChatCompletionResponseFormat{
			Type: openaiacl.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &LLMClient{chatModel: chatModel, providerID: "openai"}, nil
}

func NewClaudeClient(ctx context.Context, apiKey string, opts ClaudeModelOptions) (*LLMClient, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	chatModel, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    apiKey,
		Model:     opts.Model,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic client: %w", err)
	}
	return &LLMClient{chatModel: chatModel, providerID: "anthropic"}, nil
}

func NewGeminiClient(ctx context.Context, apiKey string, opts GeminiModelOptions) (*LLMClient, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: genaiClient,
		Model:  opts.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &LLMClient{chatModel: chatModel, providerID: "gemini"}, nil
}

// NewGeneratorClient builds the text-generation client for the
// configured provider. Unknown providers are rejected rather than
// guessed at.
func NewGeneratorClient(ctx context.Context, providerID, modelName, apiKey string) (*LLMClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key for %s is not configured", providerID)
	}
	switch providerID {
	case "openai":
		return NewOpenAIClient(ctx, apiKey, OpenAIModelOptions{Model: modelName})
	case "anthropic":
		return NewClaudeClient(ctx, apiKey, ClaudeModelOptions{Model: modelName})
	case "gemini":
		return NewGeminiClient(ctx, apiKey, GeminiModelOptions{Model: modelName})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerID)
	}
}

// NewEvaluatorClient builds the scoring client. Evaluator models come
// from the OpenAI allow-list and always request JSON output.
func NewEvaluatorClient(ctx context.Context, apiKey string) (*LLMClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key for openai is not configured")
	}
	return NewOpenAIClient(ctx, apiKey, OpenAIModelOptions{JSONResponse: true})
}

// Complete issues one chat completion and returns the assistant
// content. No retries happen here.
func (c *LLMClient) Complete(ctx context.Context, messages []*schema.Message, opts CompletionOptions) (string, error) {
	var callOpts []model.Option
	if opts.Model != "" {
		callOpts = append(callOpts, model.WithModel(opts.Model))
	}
	if opts.Temperature > 0 {
		callOpts = append(callOpts, model.WithTemperature(float32(opts.Temperature)))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, model.WithMaxTokens(opts.MaxTokens))
	}

	out, err := c.chatModel.Generate(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", c.providerID, err)
	}
	if out == nil {
		return "", fmt.Errorf("%s completion returned no message", c.providerID)
	}
	return out.Content, nil
}

// ProviderID names the backing provider, for logging.
func (c *LLMClient) ProviderID() string {
	return c.providerID
}
