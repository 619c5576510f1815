package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/domain/timeline"
	"skill-tracker/internal/pkg/dateutil"
	"skill-tracker/internal/pkg/logger"
	"skill-tracker/internal/store"
)

// SkillStore is the part of *store.Store the usecases depend on.
type SkillStore interface {
	Loaded() bool
	Skills() []skill.Skill
	Get(id string) (skill.Skill, error)
	Add(d skill.Draft) (skill.Skill, error)
	Update(s skill.Skill) (skill.Skill, error)
	Remove(id string) (bool, error)
}

var _ SkillStore = (*store.Store)(nil)

// SkillInput is a create or replace request. Nil fields take defaults on
// create and keep the stored value on update.
type SkillInput struct {
	Name      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Mastery   *int
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, in SkillInput) (skill.Skill, error)
	UpdateSkill(ctx context.Context, id string, in SkillInput) (skill.Skill, error)
	RemoveSkill(ctx context.Context, id string) (bool, error)
	GroupSkills(ctx context.Context) ([]timeline.Group, error)
}

type Skill struct {
	store  SkillStore
	now    func() time.Time
	logger *slog.Logger
}

func NewSkillUsecase(s SkillStore, now func() time.Time, log *slog.Logger) *Skill {
	if now == nil {
		now = time.Now
	}
	return &Skill{store: s, now: now, logger: logger.OrDiscard(log)}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	if !u.store.Loaded() {
		return nil, ErrNotLoaded
	}
	return u.store.Skills(), nil
}

func (u *Skill) AddSkill(ctx context.Context, in SkillInput) (skill.Skill, error) {
	d := skill.Draft{
		Name:      in.Name,
		Category:  parseCategory(in.Category),
		StartDate: dateutil.DayStart(u.now().UTC()),
		EndDate:   in.EndDate,
		Mastery:   skill.DefaultMastery,
	}
	if in.StartDate != nil {
		d.StartDate = *in.StartDate
	}
	if in.Mastery != nil {
		d.Mastery = *in.Mastery
	}

	created, err := u.store.Add(d)
	if err != nil {
		return skill.Skill{}, u.mapStoreErr("add", err)
	}
	u.logger.Info("skill added", "id", created.ID, "category", created.Category)
	return created, nil
}

func (u *Skill) UpdateSkill(ctx context.Context, id string, in SkillInput) (skill.Skill, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	current, err := u.store.Get(id)
	if err != nil {
		return skill.Skill{}, u.mapStoreErr("update", err)
	}

	next := skill.Skill{
		ID:        id,
		Name:      in.Name,
		Category:  parseCategory(in.Category),
		StartDate: current.StartDate,
		EndDate:   in.EndDate,
		Mastery:   current.Mastery,
	}
	if in.StartDate != nil {
		next.StartDate = *in.StartDate
	}
	if in.Mastery != nil {
		next.Mastery = *in.Mastery
	}

	updated, err := u.store.Update(next)
	if err != nil {
		return skill.Skill{}, u.mapStoreErr("update", err)
	}
	u.logger.Info("skill updated", "id", updated.ID)
	return updated, nil
}

func (u *Skill) RemoveSkill(ctx context.Context, id string) (bool, error) {
	removed, err := u.store.Remove(strings.TrimSpace(id))
	if err != nil {
		return false, u.mapStoreErr("remove", err)
	}
	if removed {
		u.logger.Info("skill removed", "id", id)
	}
	return removed, nil
}

func (u *Skill) GroupSkills(ctx context.Context) ([]timeline.Group, error) {
	if !u.store.Loaded() {
		return nil, ErrNotLoaded
	}
	return timeline.GroupByCategory(u.store.Skills()), nil
}

func (u *Skill) mapStoreErr(op string, err error) error {
	switch {
	case errors.Is(err, skill.ErrInvalid):
		return err
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrNotLoaded):
		return ErrNotLoaded
	default:
		u.logger.Error("skill store failed", "op", op, "error", err)
		return ErrInternal
	}
}

// parseCategory keeps an unknown value as-is so validation reports it
// against the category field.
func parseCategory(s string) skill.Category {
	c, err := skill.ParseCategory(s)
	if err != nil {
		return skill.Category(strings.TrimSpace(s))
	}
	return c
}
