// Package content keeps the in-memory list of blog posts in step with the
// post store and fills in missing translations in the background.
package content

import (
	"context"
	"errors"
	"strings"

	"portfolio/ai"
	"portfolio/database"
	"portfolio/i18n"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrTitleRequired = errors.New("title is required")
	ErrBodyRequired  = errors.New("body is required")
	ErrBodyTooLong   = errors.New("body is too long")
	ErrUploadFailed  = errors.New("image upload failed")
	ErrOffline       = errors.New("post store is offline")
)

// Store is the remote post store.
type Store interface {
	ListPosts(ctx context.Context) ([]database.Post, error)
	GetPost(ctx context.Context, id int64) (*database.Post, error)
	InsertPost(ctx context.Context, post *database.Post) (int64, error)
	UpdatePost(ctx context.Context, id int64, fields map[string]any) error
	DeletePost(ctx context.Context, id int64) error
}

// Translator translates a post title and body into a target language.
type Translator interface {
	Translate(ctx context.Context, title, body string, target i18n.Language) (ai.Translation, error)
}

// A translated body shorter than this share of a long source body is
// treated as a summary and translated again.
const (
	shortSourceMinRunes = 100
	shortTranslationMin = 0.4
)

// SuspiciouslyShort reports whether alt looks like a truncated rendition of
// src.
func SuspiciouslyShort(src, alt string) bool {
	srcLen := i18n.RuneLen(src)
	if srcLen <= shortSourceMinRunes {
		return false
	}
	return float64(i18n.RuneLen(alt)) < shortTranslationMin*float64(srcLen)
}

// NeedsTranslation reports whether post lacks adequate text in lang.
func NeedsTranslation(post database.Post, lang i18n.Language) bool {
	if lang == i18n.Secondary {
		// already written in the secondary script; the primary pass
		// corrects it and backfills the alt fields
		if i18n.HasSecondaryScript(post.Title) {
			return false
		}
		if strings.TrimSpace(post.TitleAlt) == "" || strings.TrimSpace(post.BodyAlt) == "" {
			return true
		}
		return SuspiciouslyShort(post.Body, post.BodyAlt)
	}
	return i18n.HasSecondaryScript(post.Title)
}

// DisplayText is what a view shows for a post in a given language.
type DisplayText struct {
	Title      string
	Body       string
	Translated bool
}

// SelectDisplayText picks the text to render for post in lang. Missing
// translated fields fall back to the source text one by one.
func SelectDisplayText(post database.Post, lang i18n.Language) DisplayText {
	if lang != i18n.Secondary {
		return DisplayText{Title: post.Title, Body: post.Body}
	}

	text := DisplayText{Title: post.Title, Body: post.Body}
	if strings.TrimSpace(post.TitleAlt) != "" {
		text.Title = post.TitleAlt
		text.Translated = true
	}
	if strings.TrimSpace(post.BodyAlt) != "" {
		text.Body = post.BodyAlt
		text.Translated = true
	}
	return text
}
