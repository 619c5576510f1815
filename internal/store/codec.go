package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"skill-tracker/internal/domain/skill"
)

// DateLayout is the persisted date format: ISO 8601, UTC, milliseconds.
const DateLayout = "2006-01-02T15:04:05.000Z"

type record struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Mastery   int     `json:"mastery"`
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts exactly DateLayout. Any other shape is an error rather
// than a silently kept string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in %s format", s, DateLayout)
	}
	return t, nil
}

// Encode renders skills as the persisted JSON array.
func Encode(skills []skill.Skill) ([]byte, error) {
	out := make([]record, 0, len(skills))
	for _, s := range skills {
		r := record{
			ID:        s.ID,
			Name:      s.Name,
			Category:  string(s.Category),
			StartDate: FormatDate(s.StartDate),
			Mastery:   s.Mastery,
		}
		if s.EndDate != nil {
			end := FormatDate(*s.EndDate)
			r.EndDate = &end
		}
		out = append(out, r)
	}
	return json.Marshal(out)
}

// Decode parses a persisted blob. Every record must carry a known category,
// well-formed dates and a unique id; mastery is clamped into range. The
// result is in canonical order.
func Decode(b []byte) ([]skill.Skill, error) {
	var recs []record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}

	out := make([]skill.Skill, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for i, r := range recs {
		s, err := r.skill()
		if err != nil {
			return nil, fmt.Errorf("decode skills: record %d: %w", i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("decode skills: record %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}

	sortByStart(out)
	return out, nil
}

func (r record) skill() (skill.Skill, error) {
	if strings.TrimSpace(r.ID) == "" {
		return skill.Skill{}, fmt.Errorf("missing id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return skill.Skill{}, fmt.Errorf("missing name")
	}
	cat := skill.Category(r.Category)
	if !cat.Valid() {
		return skill.Skill{}, fmt.Errorf("%w: %q", skill.ErrUnknownCategory, r.Category)
	}

	start, err := ParseDate(r.StartDate)
	if err != nil {
		return skill.Skill{}, fmt.Errorf("startDate: %w", err)
	}

	var end *time.Time
	if r.EndDate != nil {
		e, err := ParseDate(*r.EndDate)
		if err != nil {
			return skill.Skill{}, fmt.Errorf("endDate: %w", err)
		}
		if e.Before(start) {
			return skill.Skill{}, fmt.Errorf("endDate before startDate")
		}
		end = &e
	}

	return skill.Skill{
		ID:        r.ID,
		Name:      r.Name,
		Category:  cat,
		StartDate: start,
		EndDate:   end,
		Mastery:   skill.ClampMastery(r.Mastery),
	}, nil
}

func sortByStart(skills []skill.Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].StartDate.Before(skills[j].StartDate)
	})
}
