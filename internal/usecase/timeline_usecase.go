package usecase

import (
	"context"
	"errors"
	"time"

	"skill-tracker/internal/domain/timeline"
)

type TimelineUsecase interface {
	// Chart returns the projected chart and false when there is nothing to draw.
	Chart(ctx context.Context) (timeline.Chart, bool, error)
}

type Timeline struct {
	store SkillStore
	now   func() time.Time
}

func NewTimelineUsecase(s SkillStore, now func() time.Time) *Timeline {
	if now == nil {
		now = time.Now
	}
	return &Timeline{store: s, now: now}
}

func (u *Timeline) Chart(ctx context.Context) (timeline.Chart, bool, error) {
	if !u.store.Loaded() {
		return timeline.Chart{}, false, ErrNotLoaded
	}
	chart, err := timeline.Project(u.store.Skills(), u.now())
	if err != nil {
		if errors.Is(err, timeline.ErrNoData) {
			return timeline.Chart{}, false, nil
		}
		return timeline.Chart{}, false, ErrInternal
	}
	return chart, true, nil
}
