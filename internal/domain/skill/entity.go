package skill

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryFramework  Category = "Framework"
	CategoryTool       Category = "Tool"
	CategoryTechnology Category = "Technology"
	CategoryLibrary    Category = "Library"
	CategoryConcept    Category = "Concept"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFramework,
	CategoryTool,
	CategoryTechnology,
	CategoryLibrary,
	CategoryConcept,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory matches s against the fixed category set, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, v := range Categories {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

const (
	MinMastery     = 0
	MaxMastery     = 100
	DefaultMastery = 75
)

type Skill struct {
	ID        string
	Name      string
	Category  Category
	StartDate time.Time
	EndDate   *time.Time
	Mastery   int
}

// Ongoing reports whether the skill is still being learned.
func (s Skill) Ongoing() bool {
	return s.EndDate == nil
}

// EffectiveEnd is the end date, or now for an ongoing skill.
func (s Skill) EffectiveEnd(now time.Time) time.Time {
	if s.EndDate == nil {
		return now
	}
	return *s.EndDate
}

// Clone returns a copy that shares no pointers with s.
func (s Skill) Clone() Skill {
	out := s
	if s.EndDate != nil {
		end := *s.EndDate
		out.EndDate = &end
	}
	return out
}

// Draft carries every Skill field except the id.
type Draft struct {
	Name      string
	Category  Category
	StartDate time.Time
	EndDate   *time.Time
	Mastery   int
}

func (d Draft) Skill(id string) Skill {
	return Skill{
		ID:        id,
		Name:      d.Name,
		Category:  d.Category,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Mastery:   d.Mastery,
	}
}

// Normalize trims the name and moves dates to UTC at millisecond precision,
// the resolution of the persisted format.
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.StartDate = NormalizeTime(d.StartDate)
	if d.EndDate != nil {
		end := NormalizeTime(*d.EndDate)
		d.EndDate = &end
	}
	return d
}

func (s Skill) Normalize() Skill {
	d := Draft{
		Name:      s.Name,
		Category:  s.Category,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Mastery:   s.Mastery,
	}.Normalize()
	return d.Skill(s.ID)
}

func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func ClampMastery(v int) int {
	if v < MinMastery {
		return MinMastery
	}
	if v > MaxMastery {
		return MaxMastery
	}
	return v
}
