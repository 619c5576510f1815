// Package timeline derives read-only views of a skill collection: the
// category grouping used by list displays and the geometry of the learning
// timeline chart. Every function here is pure; the current instant is always
// passed in by the caller.
package timeline

import (
	"errors"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/pkg/dateutil"
)

var ErrNoData = errors.New("no skills to chart")

// Palette is cycled by bar position, not by category or id.
var Palette = []string{
	"#e76e50",
	"#2a9d90",
	"#274754",
	"#e8c468",
	"#f4a462",
}

const PresentLabel = "Present"

type Group struct {
	Category skill.Category
	Skills   []skill.Skill
}

// GroupByCategory partitions skills by category. Groups appear in order of
// first occurrence and keep the input order inside each group. Categories
// without skills are omitted.
func GroupByCategory(skills []skill.Skill) []Group {
	index := map[skill.Category]int{}
	groups := make([]Group, 0)
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, Group{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s.Clone())
	}
	return groups
}

type Bar struct {
	SkillID      string
	Name         string
	Category     skill.Category
	OffsetDays   int
	DurationDays int
	Color        string
	Ongoing      bool
	StartLabel   string
	EndLabel     string
}

type Tick struct {
	OffsetDays int
	Label      string
}

type Chart struct {
	Start     time.Time
	End       time.Time
	TotalDays int
	Bars      []Bar
	Ticks     []Tick
}

// Project computes the timeline chart for skills as of now. Bars follow the
// input order. An empty input yields ErrNoData.
func Project(skills []skill.Skill, now time.Time) (Chart, error) {
	if len(skills) == 0 {
		return Chart{}, ErrNoData
	}

	earliest := skills[0].StartDate
	latest := skills[0].EffectiveEnd(now)
	for _, s := range skills[1:] {
		if s.StartDate.Before(earliest) {
			earliest = s.StartDate
		}
		latest = dateutil.Later(latest, s.EffectiveEnd(now))
	}

	start := dateutil.MonthStart(dateutil.AddMonths(earliest, -1))
	end := dateutil.AddMonths(latest, 1)

	chart := Chart{
		Start:     start,
		End:       end,
		TotalDays: dateutil.DaysBetween(start, end),
		Bars:      make([]Bar, 0, len(skills)),
	}

	for i, s := range skills {
		duration := dateutil.DaysBetween(s.StartDate, s.EffectiveEnd(now))
		if duration <= 0 {
			duration = 1
		}

		endLabel := PresentLabel
		if s.EndDate != nil {
			endLabel = dateutil.DisplayLabel(*s.EndDate)
		}

		chart.Bars = append(chart.Bars, Bar{
			SkillID:      s.ID,
			Name:         s.Name,
			Category:     s.Category,
			OffsetDays:   dateutil.DaysBetween(start, s.StartDate),
			DurationDays: duration,
			Color:        Palette[i%len(Palette)],
			Ongoing:      s.Ongoing(),
			StartLabel:   dateutil.DisplayLabel(s.StartDate),
			EndLabel:     endLabel,
		})
	}

	chart.Ticks = MonthTicks(start, end)
	return chart, nil
}

// MonthTicks emits one tick per calendar month from start while the tick
// date is not after end.
func MonthTicks(start, end time.Time) []Tick {
	ticks := make([]Tick, 0)
	for cur := start; !cur.After(end); cur = dateutil.AddMonths(cur, 1) {
		ticks = append(ticks, Tick{
			OffsetDays: dateutil.DaysBetween(start, cur),
			Label:      dateutil.TickLabel(cur),
		})
	}
	return ticks
}
