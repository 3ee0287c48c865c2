package scoring

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
)

// Service rates submissions through an OpenAI-compatible chat completion
// endpoint. A missing API key is valid configuration; the request is still
// attempted and fails at the transport layer, degrading to Fallback.
type Service struct {
	cfg    config.ScoringConfig
	client *openai.Client
	logger *logging.Logger
}

func NewService(cfg config.ScoringConfig, logger *logging.Logger) *Service {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.APIKey == "" {
		logger.Warn("scoring service has no API key configured, scores will degrade to %q", Fallback)
	}
	return &Service{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

// Score rates how strongly caption and description jointly indicate a
// genuine civic issue. It is total: the returned value is always a 3-digit
// code, with Fallback standing in for every failure mode. The error carries
// the internal kind tag for observability.
func (s *Service) Score(ctx context.Context, caption, description string) (string, error) {
	text, err := s.Complete(ctx, buildPrompt(caption, description), float32(s.cfg.Temperature), s.cfg.MaxTokens)
	if err != nil {
		return Fallback, err
	}
	return Strict3(text), nil
}

// Complete issues a single chat completion and returns the generated text.
// Analytics reuses it for insight generation.
func (s *Service) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.ModelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", errors.Wrap(errors.KindScoring, "scoring.request", "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.KindScoring, "scoring.request", "completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
