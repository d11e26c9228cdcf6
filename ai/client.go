// Package ai talks to the Gemini API for the chat assistant and for post
// translation.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"portfolio/config"
)

// ErrDisabled is returned by Translate when no API key is configured.
var ErrDisabled = errors.New("ai service is not configured")

// generator produces one text completion.
type generator interface {
	Generate(ctx context.Context, system, prompt string, jsonResponse bool) (string, error)
}

type Client struct {
	gen     generator
	timeout time.Duration
	logger  *slog.Logger
}

// New returns a client for the configured model. Without an API key the
// client is still usable: Chat answers with a fixed message and Translate
// returns ErrDisabled.
func New(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (*Client, error) {
	c := &Client{timeout: cfg.Timeout, logger: logger.With("component", "ai")}
	if cfg.APIKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.gen = &gemini{client: client, model: cfg.Model}
	return c, nil
}

func newWithGenerator(gen generator, logger *slog.Logger) *Client {
	return &Client{gen: gen, timeout: 30 * time.Second, logger: logger}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.gen != nil
}

func (c *Client) generate(ctx context.Context, system, prompt string, jsonResponse bool) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.gen.Generate(ctx, system, prompt, jsonResponse)
}

type gemini struct {
	client *genai.Client
	model  string
}

func (g *gemini) Generate(ctx context.Context, system, prompt string, jsonResponse bool) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if jsonResponse {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
