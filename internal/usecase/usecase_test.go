package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/storage"
	"skill-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intp(v int) *int { return &v }

func loadedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(storage.NewMemory(), store.Options{Now: clock})
	s.Load(context.Background())
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSkillUsecase_NotLoaded(t *testing.T) {
	s := store.New(storage.NewMemory(), store.Options{Now: clock})
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	uc := NewSkillUsecase(s, clock, nil)

	_, err := uc.ListSkills(context.Background())
	require.ErrorIs(t, err, ErrNotLoaded)

	_, err = uc.AddSkill(context.Background(), SkillInput{Name: "Go", Category: "Technology"})
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestSkillUsecase_AddDefaults(t *testing.T) {
	uc := NewSkillUsecase(loadedStore(t), clock, nil)

	created, err := uc.AddSkill(context.Background(), SkillInput{Name: "  Go ", Category: "technology"})
	require.NoError(t, err)
	assert.Equal(t, "Go", created.Name)
	assert.Equal(t, skill.CategoryTechnology, created.Category)
	assert.Equal(t, skill.DefaultMastery, created.Mastery)
	assert.Equal(t, *day(2024, time.May, 20), created.StartDate)
	assert.True(t, created.Ongoing())
	assert.NotEmpty(t, created.ID)
}

func TestSkillUsecase_AddValidation(t *testing.T) {
	uc := NewSkillUsecase(loadedStore(t), clock, nil)

	_, err := uc.AddSkill(context.Background(), SkillInput{
		Name:      "",
		Category:  "cooking",
		StartDate: day(2024, time.June, 1),
		Mastery:   intp(120),
	})
	require.ErrorIs(t, err, skill.ErrInvalid)

	var verr *skill.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, skill.FieldName)
	assert.Contains(t, verr.Fields, skill.FieldCategory)
	assert.Contains(t, verr.Fields, skill.FieldStartDate)
	assert.Contains(t, verr.Fields, skill.FieldMastery)
}

func TestSkillUsecase_UpdateKeepsUnsetFields(t *testing.T) {
	uc := NewSkillUsecase(loadedStore(t), clock, nil)
	ctx := context.Background()

	created, err := uc.AddSkill(ctx, SkillInput{
		Name:      "Figma",
		Category:  "Tool",
		StartDate: day(2023, time.January, 10),
		Mastery:   intp(40),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateSkill(ctx, created.ID, SkillInput{
		Name:     "Figma",
		Category: "Tool",
		EndDate:  day(2023, time.August, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 40, updated.Mastery)
	assert.Equal(t, created.StartDate, updated.StartDate)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, *day(2023, time.August, 1), *updated.EndDate)
}

func TestSkillUsecase_UpdateNotFound(t *testing.T) {
	uc := NewSkillUsecase(loadedStore(t), clock, nil)
	_, err := uc.UpdateSkill(context.Background(), "missing", SkillInput{Name: "Go", Category: "Technology"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = uc.UpdateSkill(context.Background(), " ", SkillInput{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSkillUsecase_RemoveAndGroups(t *testing.T) {
	uc := NewSkillUsecase(loadedStore(t), clock, nil)
	ctx := context.Background()

	a, err := uc.AddSkill(ctx, SkillInput{Name: "Go", Category: "Technology", StartDate: day(2022, time.March, 1)})
	require.NoError(t, err)
	_, err = uc.AddSkill(ctx, SkillInput{Name: "Spanish", Category: "Concept", StartDate: day(2022, time.April, 1)})
	require.NoError(t, err)
	_, err = uc.AddSkill(ctx, SkillInput{Name: "Rust", Category: "Technology", StartDate: day(2022, time.May, 1)})
	require.NoError(t, err)

	groups, err := uc.GroupSkills(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, skill.CategoryTechnology, groups[0].Category)
	assert.Len(t, groups[0].Skills, 2)

	removed, err := uc.RemoveSkill(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = uc.RemoveSkill(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	list, err := uc.ListSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTimelineUsecase(t *testing.T) {
	s := loadedStore(t)
	uc := NewTimelineUsecase(s, clock)

	_, ok, err := uc.Chart(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Add(skill.Draft{Name: "Go", Category: skill.CategoryTechnology, StartDate: *day(2024, time.January, 15), Mastery: 50})
	require.NoError(t, err)

	chart, ok, err := uc.Chart(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, chart.Bars, 1)
	assert.Equal(t, *day(2023, time.December, 1), chart.Start)
}

type fakeAI struct {
	calls      int
	suggestion []string
	category   skill.Category
	err        error
	gotNames   []string
}

func (f *fakeAI) SuggestRelated(_ context.Context, names []string) ([]string, error) {
	f.calls++
	f.gotNames = names
	return f.suggestion, f.err
}

func (f *fakeAI) Categorize(_ context.Context, _ string) (skill.Category, error) {
	f.calls++
	return f.category, f.err
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]string
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(out.(*[]string)) = v
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.([]string)
	return nil
}

func TestSuggestionUsecase_UsesStoreNamesAndCache(t *testing.T) {
	s := loadedStore(t)
	_, err := s.Add(skill.Draft{Name: "Go", Category: skill.CategoryTechnology, StartDate: *day(2024, time.January, 15), Mastery: 50})
	require.NoError(t, err)

	client := &fakeAI{suggestion: []string{"Kubernetes", "gRPC"}}
	cache := &memCache{data: map[string][]string{}}
	uc := NewSuggestionUsecase(client, s, cache, time.Minute, nil)

	out, err := uc.Suggest(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes", "gRPC"}, out)
	assert.Equal(t, []string{"Go"}, client.gotNames)

	out, err = uc.Suggest(context.Background(), []string{" go "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes", "gRPC"}, out)
	assert.Equal(t, 1, client.calls)
}

func TestSuggestionUsecase_Errors(t *testing.T) {
	uc := NewSuggestionUsecase(&fakeAI{err: errors.New("quota")}, loadedStore(t), nil, 0, nil)

	_, err := uc.Suggest(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoSkills)

	_, err = uc.Suggest(context.Background(), []string{"Go"})
	require.ErrorIs(t, err, ErrAIUnavailable)

	_, err = uc.Categorize(context.Background(), "G")
	require.ErrorIs(t, err, ErrNameTooShort)

	_, err = uc.Categorize(context.Background(), "Go")
	require.ErrorIs(t, err, ErrAIUnavailable)
}

func TestSuggestionUsecase_Categorize(t *testing.T) {
	uc := NewSuggestionUsecase(&fakeAI{category: skill.CategoryTool}, nil, nil, 0, nil)
	c, err := uc.Categorize(context.Background(), "Figma")
	require.NoError(t, err)
	assert.Equal(t, skill.CategoryTool, c)
}

func TestSuggestionCacheKey(t *testing.T) {
	a := SuggestionCacheKey([]string{"Go", "  Rust", "go"})
	b := SuggestionCacheKey([]string{"rust", "Golang"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, SuggestionCacheKey([]string{"go"}))
	assert.Contains(t, a, "suggest:")
}

func TestSuggestionUsecase_DropsKnownSkills(t *testing.T) {
	client := &fakeAI{suggestion: []string{"Golang", "Kubernetes", "k8s", " "}}
	uc := NewSuggestionUsecase(client, nil, nil, 0, nil)

	out, err := uc.Suggest(context.Background(), []string{"Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes"}, out)
}
