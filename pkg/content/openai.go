package content

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI generation gateway.
type OpenAIConfig struct {
	APIKey       string `env:"OPENAI_API_KEY,required"`
	FreeModel    string `env:"OPENAI_FREE_MODEL" envDefault:"gpt-4o-mini"`
	PremiumModel string `env:"OPENAI_PREMIUM_MODEL" envDefault:"gpt-4o"`
}

// Token budgets per tier. Premium gets room for long-form copy.
const (
	freeMaxTokens    = 800
	premiumMaxTokens = 2000
)

// OpenAIGenerator implements Generator against the OpenAI chat completion
// API, with prompts rendered from the embedded template catalog.
type OpenAIGenerator struct {
	client  *openai.Client
	catalog *TemplateCatalog
	config  OpenAIConfig
}

// NewOpenAIGenerator creates the OpenAI-backed generation gateway.
func NewOpenAIGenerator(config OpenAIConfig) (*OpenAIGenerator, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	catalog, err := LoadTemplateCatalog()
	if err != nil {
		return nil, err
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(config.APIKey),
		catalog: catalog,
		config:  config,
	}, nil
}

// Generate renders the prompts for the request and calls the chat
// completion API once. No retries: the caller already committed a charge,
// and transparent retries would multiply provider cost on systemic failures.
func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	systemPrompt, userPrompt, err := g.catalog.Render(req)
	if err != nil {
		return "", err
	}

	model := g.config.FreeModel
	maxTokens := freeMaxTokens
	if req.Premium {
		model = g.config.PremiumModel
		maxTokens = premiumMaxTokens
	}

	// Variations run hotter so the output actually diverges from the
	// original instead of paraphrasing it.
	temperature := float32(0.7)
	if req.VariationOf != "" {
		temperature = 0.9
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", errors.Join(ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
