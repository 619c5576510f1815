package skill

import (
	"errors"
	"sort"
	"strings"
	"time"

	"skill-tracker/internal/pkg/dateutil"
)

var (
	ErrInvalid         = errors.New("invalid skill")
	ErrUnknownCategory = errors.New("unknown category")
)

const (
	FieldID        = "id"
	FieldName      = "name"
	FieldCategory  = "category"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldMastery   = "mastery"
)

// EarliestStartDate is the oldest start date accepted for a new skill.
var EarliestStartDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalid.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks d against the entity invariants. now bounds the dates: no
// day after today is accepted.
func (d Draft) Validate(now time.Time) error {
	verr := &ValidationError{}

	if strings.TrimSpace(d.Name) == "" {
		verr.add(FieldName, "Skill name is required.")
	}
	if !d.Category.Valid() {
		verr.add(FieldCategory, "Select a valid category.")
	}
	if d.Mastery < MinMastery || d.Mastery > MaxMastery {
		verr.add(FieldMastery, "Mastery must be between 0 and 100.")
	}

	today := dateutil.DayStart(now.UTC())
	switch {
	case d.StartDate.IsZero():
		verr.add(FieldStartDate, "A start date is required.")
	case d.StartDate.Before(EarliestStartDate):
		verr.add(FieldStartDate, "Start date cannot be before 1990-01-01.")
	case dateutil.DayStart(d.StartDate.UTC()).After(today):
		verr.add(FieldStartDate, "Start date cannot be in the future.")
	}

	if d.EndDate != nil {
		switch {
		case !d.StartDate.IsZero() && d.EndDate.Before(d.StartDate):
			verr.add(FieldEndDate, "End date cannot be earlier than start date.")
		case dateutil.DayStart(d.EndDate.UTC()).After(today):
			verr.add(FieldEndDate, "End date cannot be in the future.")
		}
	}

	return verr.orNil()
}

func (s Skill) Validate(now time.Time) error {
	err := Draft{
		Name:      s.Name,
		Category:  s.Category,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Mastery:   s.Mastery,
	}.Validate(now)

	if strings.TrimSpace(s.ID) == "" {
		verr := &ValidationError{}
		var existing *ValidationError
		if errors.As(err, &existing) {
			verr = existing
		}
		verr.add(FieldID, "Skill id is required.")
		return verr
	}
	return err
}
