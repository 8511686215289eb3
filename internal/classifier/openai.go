package classifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIGateway invokes a live OpenAI-compatible chat model. Any transport,
// authentication or quota failure is swallowed and replaced with the fixed
// fallback response; the moderation path never fails because the external
// classifier degraded.
type OpenAIGateway struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenAIGateway creates a live classifier gateway. baseURL may be empty to
// use the default OpenAI endpoint; timeout bounds every invocation.
func NewOpenAIGateway(apiKey, baseURL, model string, temperature float32, timeout time.Duration, logger *zap.Logger) *OpenAIGateway {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIGateway{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

// Invoke sends the built prompt to the live model and returns its completion
// text. The content argument is unused in live mode; the prompt already
// embeds it.
func (g *OpenAIGateway) Invoke(ctx context.Context, prompt, _ string) Response {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: g.temperature,
	})
	if err != nil {
		g.logger.Error("Classifier invocation failed", zap.Error(err))
		return fallbackResponse(fmt.Sprintf("invocation failed: %v", err))
	}

	if len(resp.Choices) == 0 {
		g.logger.Error("Classifier returned an empty completion")
		return fallbackResponse("empty completion")
	}

	return Response{Raw: resp.Choices[0].Message.Content}
}
