package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"skill-tracker/internal/domain/skill"

	"google.golang.org/genai"
)

var (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

// generator is the subset of genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Option func(*Gemini)

func WithAPIKey(key string) Option {
	return func(g *Gemini) { g.apiKey = key }
}

func WithModel(model string) Option {
	return func(g *Gemini) {
		if strings.TrimSpace(model) != "" {
			g.model = model
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gemini) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func withGenerator(gen generator) Option {
	return func(g *Gemini) { g.gen = gen }
}

// Gemini implements Client on the Google Gen AI SDK. The SDK client is
// created lazily on first use.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration

	mutex sync.Mutex
	gen   generator
}

var _ Client = &Gemini{}

func NewGemini(opts ...Option) *Gemini {
	var apiKey string
	if value := os.Getenv("GEMINI_API_KEY"); value != "" {
		apiKey = value
	} else if value := os.Getenv("GOOGLE_API_KEY"); value != "" {
		apiKey = value
	}
	g := &Gemini{
		apiKey:  apiKey,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) initClient(ctx context.Context) (generator, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.gen != nil {
		return g.gen, nil
	}
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google genai client: %w", err)
	}
	g.gen = client.Models
	return g.gen, nil
}

type suggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

var suggestSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type:        genai.TypeArray,
			Description: "A list of related skills, technologies, and concepts the user could learn.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"suggestions"},
}

func (g *Gemini) SuggestRelated(ctx context.Context, skills []string) ([]string, error) {
	prompt, err := executeTemplate(suggestTemplate, skills)
	if err != nil {
		return nil, err
	}

	var out suggestOutput
	if err := g.generateJSON(ctx, prompt, suggestSchema, &out); err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(out.Suggestions))
	seen := map[string]struct{}{}
	for _, s := range out.Suggestions {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

type categorizeOutput struct {
	Category string `json:"category"`
}

func categorizeSchema() *genai.Schema {
	enum := make([]string, 0, len(skill.Categories))
	for _, c := range skill.Categories {
		enum = append(enum, string(c))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {
				Type:        genai.TypeString,
				Description: "The category of the skill.",
				Enum:        enum,
			},
		},
		Required: []string{"category"},
	}
}

func (g *Gemini) Categorize(ctx context.Context, name string) (skill.Category, error) {
	names := make([]string, 0, len(skill.Categories))
	for _, c := range skill.Categories {
		names = append(names, string(c))
	}
	prompt, err := executeTemplate(categorizeTemplate, map[string]string{
		"Name":       name,
		"Categories": strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1],
	})
	if err != nil {
		return "", err
	}

	var out categorizeOutput
	if err := g.generateJSON(ctx, prompt, categorizeSchema(), &out); err != nil {
		return "", err
	}

	cat, err := skill.ParseCategory(out.Category)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cat, nil
}

func (g *Gemini) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	gen, err := g.initClient(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := gen.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("error generating content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
