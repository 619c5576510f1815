package seeder

import (
	"context"
	"strings"
	"time"

	"skill-tracker/internal/domain/skill"
)

type DemoSkillsSeeder struct{}

func (DemoSkillsSeeder) Name() string { return "demo_skills" }

// Run adds each demo skill whose name is not already present.
func (DemoSkillsSeeder) Run(ctx context.Context, t Target) error {
	existing := map[string]bool{}
	for _, s := range t.Skills() {
		existing[strings.ToLower(s.Name)] = true
	}

	for _, d := range DemoSkills() {
		if existing[strings.ToLower(d.Name)] {
			continue
		}
		if _, err := t.Add(d); err != nil {
			return err
		}
	}
	return nil
}

func DemoSkills() []skill.Draft {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	return []skill.Draft{
		{Name: "Go", Category: skill.CategoryTechnology, StartDate: date(2021, time.February, 1), Mastery: 85},
		{Name: "PostgreSQL", Category: skill.CategoryTechnology, StartDate: date(2021, time.June, 14), EndDate: ptr(date(2022, time.March, 30)), Mastery: 70},
		{Name: "Fiber", Category: skill.CategoryFramework, StartDate: date(2022, time.January, 10), Mastery: 65},
		{Name: "Docker", Category: skill.CategoryTool, StartDate: date(2022, time.May, 2), EndDate: ptr(date(2022, time.September, 15)), Mastery: 75},
		{Name: "go-redis", Category: skill.CategoryLibrary, StartDate: date(2023, time.February, 20), Mastery: 55},
		{Name: "Event Sourcing", Category: skill.CategoryConcept, StartDate: date(2023, time.August, 7), Mastery: 40},
	}
}
