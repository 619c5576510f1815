package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/storage"
	"skill-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTarget struct {
	skills  []skill.Skill
	err     error
	loadErr error
}

func (m *memTarget) Skills() []skill.Skill { return m.skills }
func (m *memTarget) LoadErr() error        { return m.loadErr }

func (m *memTarget) Add(d skill.Draft) (skill.Skill, error) {
	if m.err != nil {
		return skill.Skill{}, m.err
	}
	s := d.Skill(d.Name)
	m.skills = append(m.skills, s)
	return s, nil
}

func TestDemoSkillsSeeder_SkipsExisting(t *testing.T) {
	target := &memTarget{skills: []skill.Skill{{ID: "x", Name: "go"}}}
	require.NoError(t, Runner{Seeders: Defaults()}.Run(context.Background(), target))
	assert.Len(t, target.skills, len(DemoSkills()))

	require.NoError(t, Runner{Seeders: Defaults()}.Run(context.Background(), target))
	assert.Len(t, target.skills, len(DemoSkills()))
}

func TestRunner_WrapsError(t *testing.T) {
	boom := errors.New("boom")
	err := Runner{Seeders: Defaults()}.Run(context.Background(), &memTarget{err: boom})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed demo_skills")
}

func TestDemoSkills_AreValid(t *testing.T) {
	for _, d := range DemoSkills() {
		require.NoError(t, d.Validate(d.StartDate.AddDate(3, 0, 0)), d.Name)
	}
}

func TestRunner_RefusesDegradedTarget(t *testing.T) {
	target := &memTarget{loadErr: errors.New("decode failed")}
	err := Runner{Seeders: Defaults()}.Run(context.Background(), target)
	require.ErrorIs(t, err, ErrUnreadableTarget)
	assert.Empty(t, target.skills)
}

func TestRunner_LeavesUnreadableBlobAlone(t *testing.T) {
	blob := []byte(`[
		{"id":"r","name":"Rust","category":"Technology","startDate":"2022-01-10T00:00:00.000Z","endDate":null,"mastery":40},
		{"id":"e","name":"Elm","category":"Technology","startDate":"2022-03-01T00:00:00Z","endDate":null,"mastery":30}
	]`)
	blobs := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, blobs.Set(ctx, storage.DefaultKey, blob))

	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	st := store.New(blobs, store.Options{Now: func() time.Time { return now }})
	st.Load(ctx)

	err := Runner{Seeders: Defaults()}.Run(ctx, st)
	require.ErrorIs(t, err, ErrUnreadableTarget)
	require.NoError(t, st.Close(ctx))

	got, err := blobs.Get(ctx, storage.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, string(blob), string(got))
}
