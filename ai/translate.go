package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"portfolio/i18n"
)

var ErrBadTranslation = errors.New("translation response is empty or malformed")

// Translation is a translated post title and body.
type Translation struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

const translatorInstruction = `You are a professional translator for a technology blog.
Translate faithfully and completely. Never summarise or shorten the text.
Keep Markdown formatting, line breaks, product names, code and URLs unchanged.
Answer with a single JSON object of the form {"title": "...", "body": "..."} and nothing else.`

// Translate translates a post title and body into target.
func (c *Client) Translate(ctx context.Context, title, body string, target i18n.Language) (Translation, error) {
	if !c.Enabled() {
		return Translation{}, ErrDisabled
	}

	src, _ := json.Marshal(Translation{Title: title, Body: body})
	prompt := fmt.Sprintf("Translate the title and body of this blog post into %s.\n\n%s", target.Name(), src)

	raw, err := c.generate(ctx, translatorInstruction, prompt, true)
	if err != nil {
		return Translation{}, fmt.Errorf("translate to %s: %w", target, err)
	}

	return parseTranslation(raw)
}

func parseTranslation(raw string) (Translation, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var t Translation
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &t); err != nil {
		return Translation{}, fmt.Errorf("%w: %v", ErrBadTranslation, err)
	}

	t.Title = strings.TrimSpace(t.Title)
	t.Body = strings.TrimSpace(t.Body)
	if t.Title == "" || t.Body == "" {
		return Translation{}, ErrBadTranslation
	}
	return t, nil
}
