// Package seeder fills an empty skill collection with demo data.
package seeder

import (
	"context"
	"errors"
	"fmt"

	"skill-tracker/internal/domain/skill"
)

var ErrUnreadableTarget = errors.New("refusing to seed over unreadable stored skills")

// Target is the part of the skill store a seeder writes to.
type Target interface {
	Skills() []skill.Skill
	Add(d skill.Draft) (skill.Skill, error)
	// LoadErr is non-nil when the stored collection could not be read and
	// the target fell back to empty.
	LoadErr() error
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, t Target) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, t Target) error {
	if t == nil {
		return fmt.Errorf("nil target")
	}
	// Seeding a degraded target would persist over the unreadable data.
	if err := t.LoadErr(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableTarget, err)
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Run(ctx, t); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{DemoSkillsSeeder{}}
}
