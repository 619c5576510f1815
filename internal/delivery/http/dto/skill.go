package dto

import (
	"strings"
	"time"

	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/domain/timeline"
	"skill-tracker/internal/pkg/dateutil"
	"skill-tracker/internal/store"
	"skill-tracker/internal/usecase"
)

type SkillRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Mastery   *int    `json:"mastery"`
}

// ToInput converts the request, returning per-field messages for dates that
// do not parse. An empty end_date means the skill is ongoing.
func (r SkillRequest) ToInput() (usecase.SkillInput, map[string]string) {
	in := usecase.SkillInput{
		Name:     r.Name,
		Category: r.Category,
		Mastery:  r.Mastery,
	}
	bad := map[string]string{}

	if r.StartDate != nil && strings.TrimSpace(*r.StartDate) != "" {
		t, err := dateutil.ParseDate(*r.StartDate)
		if err != nil {
			bad[skill.FieldStartDate] = "Start date must be YYYY-MM-DD."
		} else {
			in.StartDate = &t
		}
	}
	if r.EndDate != nil && strings.TrimSpace(*r.EndDate) != "" {
		t, err := dateutil.ParseDate(*r.EndDate)
		if err != nil {
			bad[skill.FieldEndDate] = "End date must be YYYY-MM-DD."
		} else {
			in.EndDate = &t
		}
	}

	if len(bad) == 0 {
		return in, nil
	}
	return in, bad
}

type SkillResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Mastery   int     `json:"mastery"`
	Ongoing   bool    `json:"ongoing"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	out := SkillResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category.String(),
		StartDate: store.FormatDate(s.StartDate),
		Mastery:   s.Mastery,
		Ongoing:   s.Ongoing(),
	}
	if s.EndDate != nil {
		end := store.FormatDate(*s.EndDate)
		out.EndDate = &end
	}
	return out
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSkillResponse(it))
	}
	return out
}

type SkillListResponse struct {
	Loaded bool            `json:"loaded"`
	Skills []SkillResponse `json:"skills"`
}

// LoadingResponse is the 503 payload served before the collection is loaded.
type LoadingResponse struct {
	Loaded bool `json:"loaded"`
}

type RemoveSkillResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

type SkillGroupResponse struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Skills   []SkillResponse `json:"skills"`
}

func NewSkillGroupResponses(groups []timeline.Group) []SkillGroupResponse {
	out := make([]SkillGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, SkillGroupResponse{
			Category: g.Category.String(),
			Count:    len(g.Skills),
			Skills:   NewSkillResponses(g.Skills),
		})
	}
	return out
}

type ChartResponse struct {
	HasData   bool           `json:"has_data"`
	Start     string         `json:"start,omitempty"`
	End       string         `json:"end,omitempty"`
	TotalDays int            `json:"total_days"`
	Bars      []BarResponse  `json:"bars"`
	Ticks     []TickResponse `json:"ticks"`
}

type BarResponse struct {
	SkillID      string `json:"skill_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	OffsetDays   int    `json:"offset_days"`
	DurationDays int    `json:"duration_days"`
	Color        string `json:"color"`
	Ongoing      bool   `json:"ongoing"`
	StartLabel   string `json:"start_label"`
	EndLabel     string `json:"end_label"`
}

type TickResponse struct {
	OffsetDays int    `json:"offset_days"`
	Label      string `json:"label"`
}

func EmptyChartResponse() ChartResponse {
	return ChartResponse{Bars: []BarResponse{}, Ticks: []TickResponse{}}
}

func NewChartResponse(c timeline.Chart) ChartResponse {
	out := ChartResponse{
		HasData:   true,
		Start:     formatDay(c.Start),
		End:       formatDay(c.End),
		TotalDays: c.TotalDays,
		Bars:      make([]BarResponse, 0, len(c.Bars)),
		Ticks:     make([]TickResponse, 0, len(c.Ticks)),
	}
	for _, b := range c.Bars {
		out.Bars = append(out.Bars, BarResponse{
			SkillID:      b.SkillID,
			Name:         b.Name,
			Category:     b.Category.String(),
			OffsetDays:   b.OffsetDays,
			DurationDays: b.DurationDays,
			Color:        b.Color,
			Ongoing:      b.Ongoing,
			StartLabel:   b.StartLabel,
			EndLabel:     b.EndLabel,
		})
	}
	for _, t := range c.Ticks {
		out.Ticks = append(out.Ticks, TickResponse{OffsetDays: t.OffsetDays, Label: t.Label})
	}
	return out
}

func formatDay(t time.Time) string {
	return t.UTC().Format(dateutil.DateLayout)
}
