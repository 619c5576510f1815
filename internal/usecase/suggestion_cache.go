package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"skill-tracker/internal/search"
)

type SuggestionCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// SuggestionCacheKey is independent of name order and of spelling variants
// that share a canonical form.
func SuggestionCacheKey(names []string) string {
	norm := make([]string, 0, len(names))
	seen := map[string]struct{}{}
	for _, n := range names {
		n = search.Canonical(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		norm = append(norm, n)
	}
	sort.Strings(norm)

	b, _ := json.Marshal(norm)
	sum := sha256.Sum256(b)
	return "suggest:" + hex.EncodeToString(sum[:])
}
