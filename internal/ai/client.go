// Package ai wraps the generative model used for learning suggestions and
// skill categorisation.
package ai

import (
	"context"
	"errors"

	"skill-tracker/internal/domain/skill"
)

var (
	ErrEmptyResponse   = errors.New("empty response from model")
	ErrInvalidResponse = errors.New("invalid response from model")
	ErrNotConfigured   = errors.New("ai client not configured")
)

// Client is the request/response contract of the suggestion service.
type Client interface {
	// SuggestRelated returns skills worth learning next given known ones.
	SuggestRelated(ctx context.Context, skills []string) ([]string, error)
	// Categorize returns exactly one of the fixed skill categories.
	Categorize(ctx context.Context, name string) (skill.Category, error)
}
