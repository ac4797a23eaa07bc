// internal/llm/openai_client.go
// Cliente OpenAI para o resumo narrativo da frota (opcional)

package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client é o contrato mínimo que os handlers consomem.
type Client interface {
	// Resposta narrativa (não-stream)
	Answer(ctx context.Context, system, prompt string) (string, error)

	// Streaming de deltas para SSE
	AnswerStream(ctx context.Context, system, prompt string, onDelta func(delta string) error) (string, error)

	// Nome do modelo ativo
	Model() string
}

type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewFromEnv lê chave e modelo do ambiente:
// - OPENAI_API_KEY (obrigatória)
// - OPENAI_MODEL (opcional, default gpt-4o-mini)
// - OPENAI_BASE_URL (opcional, proxy/self-hosted)
func NewFromEnv() (Client, error) {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}

	cfg := openai.DefaultConfig(key)
	if base := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); base != "" {
		cfg.BaseURL = base
	}

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Answer(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, 18*time.Second)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) AnswerStream(ctx context.Context, system, prompt string, onDelta func(delta string) error) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		Stream:      true,
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai stream init: %w", err)
	}
	defer stream.Close()

	var final strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return final.String(), fmt.Errorf("openai stream recv: %w", err)
		}
		for _, ch := range resp.Choices {
			delta := ch.Delta.Content
			if delta == "" {
				continue
			}
			final.WriteString(delta)
			if onDelta != nil {
				if derr := onDelta(delta); derr != nil {
					return final.String(), derr
				}
			}
		}
	}
	return final.String(), nil
}
