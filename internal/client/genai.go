package client

import (
	"context"
	"fmt"

	"github.com/statuswatch/backend/internal/config"
	"google.golang.org/genai"
)

// GenAIClient wraps the Gemini API for text generation (feedback
// summarization, Q&A) and text embeddings (report retrieval).
type GenAIClient struct {
	client     *genai.Client
	textModel  string
	embedModel string
}

func NewGenAIClient(ctx context.Context, cfg config.AIConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}
	return &GenAIClient{
		client:     client,
		textModel:  cfg.TextModel,
		embedModel: cfg.EmbedModel,
	}, nil
}

func (c *GenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("empty generation result")
	}
	return text, nil
}

func (c *GenAIClient) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	res, err := c.client.Models.EmbedContent(ctx, c.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, c.embedModel, err
	}
	if res == nil || len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return nil, c.embedModel, fmt.Errorf("empty embedding result")
	}
	return res.Embeddings[0].Values, c.embedModel, nil
}
