package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  Node.js ":       "nodejs",
		"C++":              "c++",
		"C#":               "c#",
		"machine-learning": "machine learning",
		"Go   Lang":        "go lang",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "go", Canonical("Golang"))
	assert.Equal(t, "go", Canonical("GO"))
	assert.Equal(t, "nodejs", Canonical("Node JS"))
	assert.Equal(t, "kubernetes", Canonical("k8s"))
	assert.Equal(t, "rust", Canonical("Rust"))
}

func TestIndex(t *testing.T) {
	idx := NewIndex([]string{"Golang", "PostgreSQL", " "})
	assert.True(t, idx.Contains("go"))
	assert.True(t, idx.Contains("postgres"))
	assert.False(t, idx.Contains("Redis"))
	assert.Len(t, idx, 2)
}

func TestGetAliases(t *testing.T) {
	assert.Equal(t, []string{"golang"}, GetAliases("go"))
	assert.Empty(t, GetAliases("rust"))
}
