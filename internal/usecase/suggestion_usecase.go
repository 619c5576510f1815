package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"skill-tracker/internal/ai"
	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/pkg/logger"
	"skill-tracker/internal/search"
)

const minCategorizeNameLen = 2

type SuggestionUsecase interface {
	// Suggest falls back to the stored skill names when names is empty.
	Suggest(ctx context.Context, names []string) ([]string, error)
	Categorize(ctx context.Context, name string) (skill.Category, error)
}

type Suggestion struct {
	ai       ai.Client
	store    SkillStore
	cache    SuggestionCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewSuggestionUsecase(client ai.Client, s SkillStore, cache SuggestionCache, cacheTTL time.Duration, log *slog.Logger) *Suggestion {
	return &Suggestion{
		ai:       client,
		store:    s,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.OrDiscard(log).With("component", "suggestions"),
	}
}

func (u *Suggestion) Suggest(ctx context.Context, names []string) ([]string, error) {
	names = cleanNames(names)
	if len(names) == 0 && u.store != nil {
		if !u.store.Loaded() {
			return nil, ErrNotLoaded
		}
		for _, s := range u.store.Skills() {
			names = append(names, s.Name)
		}
		names = cleanNames(names)
	}
	if len(names) == 0 {
		return nil, ErrNoSkills
	}
	if u.ai == nil {
		return nil, ErrAIUnavailable
	}

	key := SuggestionCacheKey(names)
	if u.cache != nil {
		var cached []string
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("suggestion cache read failed", "key", key, "error", err)
		}
		if hit {
			u.logger.Debug("suggestion cache hit", "key", key)
			return cached, nil
		}
	}

	raw, err := u.ai.SuggestRelated(ctx, names)
	if err != nil {
		u.logger.Error("suggestions failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	out := dropKnown(raw, names)

	if u.cache != nil && len(out) > 0 {
		if err := u.cache.SetJSON(ctx, key, out, u.cacheTTL); err != nil {
			u.logger.Warn("suggestion cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

func (u *Suggestion) Categorize(ctx context.Context, name string) (skill.Category, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minCategorizeNameLen {
		return "", ErrNameTooShort
	}
	if u.ai == nil {
		return "", ErrAIUnavailable
	}

	c, err := u.ai.Categorize(ctx, name)
	if err != nil {
		u.logger.Error("categorize failed", "name", name, "error", err)
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	return c, nil
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// dropKnown removes suggestions the caller already has, comparing canonical
// names, and repeated suggestions.
func dropKnown(suggested, known []string) []string {
	idx := search.NewIndex(known)
	out := make([]string, 0, len(suggested))
	for _, s := range suggested {
		s = strings.TrimSpace(s)
		if s == "" || idx.Contains(s) {
			continue
		}
		idx[search.Canonical(s)] = struct{}{}
		out = append(out, s)
	}
	return out
}
