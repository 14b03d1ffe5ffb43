// internal/domain/plan.go
package domain

import (
	"time"
)

// Weekday indexes the seven day slots of a plan. Plans always carry all
// seven days; an unused day simply has no entries.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	DaysPerWeek = 7
)

// dayKeys are the wire keys of the seven day slots. Existing documents were
// written with these exact strings as map keys, so they must not change.
var dayKeys = [DaysPerWeek]string{
	"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato", "Domenica",
}

// Key returns the persisted map key for the day.
func (w Weekday) Key() string {
	if w < Monday || w > Sunday {
		return ""
	}
	return dayKeys[w]
}

// DisplayName returns the default (localized) name shown for the day when no
// override is set.
func (w Weekday) DisplayName() string { return w.Key() }

// ParseWeekday resolves a wire key back to its day slot.
func ParseWeekday(key string) (Weekday, bool) {
	for i, k := range dayKeys {
		if k == key {
			return Weekday(i), true
		}
	}
	return 0, false
}

// Weekdays returns all day slots in week order.
func Weekdays() []Weekday {
	days := make([]Weekday, DaysPerWeek)
	for i := range days {
		days[i] = Weekday(i)
	}
	return days
}

// Suggested values for the plan's goal and level fields. The server does not
// validate against these; they exist for clients building selection UIs.
var (
	Goals  = []string{"Forza", "Massa", "Definizione", "Resistenza", "Ricomposizione"}
	Levels = []string{"Principiante", "Intermedio", "Avanzato"}
)

// Plan is a client's live workout program: seven ordered day schedules plus
// top-level metadata. Exactly one live Plan exists per client; immutable
// copies of it accumulate in history on every save or send.
type Plan struct {
	Goal          string     `json:"obiettivo"`
	Level         string     `json:"livello"`
	DurationWeeks int        `json:"durataSettimane,omitempty"`
	Notes         string     `json:"note"`
	Days          [DaysPerWeek]DaySchedule `json:"-"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
}

// DaySchedule is one weekday's ordered entry list. Entry order is authored
// order and is preserved exactly.
type DaySchedule struct {
	DisplayName string  `bson:"nomePersonalizzato,omitempty" json:"nomePersonalizzato,omitempty"`
	Entries     []Entry `bson:"esercizi" json:"esercizi"`
}

// Clone returns a deep copy of the schedule. The returned entry slice is
// independently owned: mutating the original afterwards never reaches the
// copy, and vice versa.
func (d DaySchedule) Clone() DaySchedule {
	return DaySchedule{
		DisplayName: d.DisplayName,
		Entries:     CloneEntries(d.Entries),
	}
}

// CloneEntries copies an entry list. Entries hold only scalar fields, so a
// slice copy is a full deep copy.
func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// NewPlan returns an empty plan with all seven days initialized.
func NewPlan() *Plan {
	p := &Plan{}
	for i := range p.Days {
		p.Days[i].Entries = []Entry{}
	}
	return p
}

// Clone returns a deep copy of the plan. Used for history snapshots and
// preset capture, where the stored copy must be detached from the editor.
func (p *Plan) Clone() *Plan {
	c := *p
	for i := range p.Days {
		c.Days[i] = p.Days[i].Clone()
	}
	if p.SentAt != nil {
		t := *p.SentAt
		c.SentAt = &t
	}
	return &c
}

// ExerciseCount returns the number of non-marker entries across all days.
func (p *Plan) ExerciseCount() int {
	n := 0
	for _, day := range p.Days {
		for _, e := range day.Entries {
			if !e.IsMarker {
				n++
			}
		}
	}
	return n
}

// Expiry computes the plan's delivery expiry from a reference time, or nil
// when no duration is set.
func (p *Plan) Expiry(from time.Time) *time.Time {
	if p.DurationWeeks <= 0 {
		return nil
	}
	t := from.AddDate(0, 0, p.DurationWeeks*7)
	return &t
}

// PlanFragment is a plan-shaped partial document: a preset's payload or a
// history record being merged back into the editor. Merging is a shallow,
// top-level overwrite by contract — a field participates only if it was
// present in the stored fragment, and Days replaces the whole week wholesale,
// never day by day. Existing presets depend on exactly these semantics.
type PlanFragment struct {
	Goal          *string                   `json:"obiettivo,omitempty"`
	Level         *string                   `json:"livello,omitempty"`
	DurationWeeks *int                      `json:"durataSettimane,omitempty"`
	Notes         *string                   `json:"note,omitempty"`
	Days          *[DaysPerWeek]DaySchedule `json:"-"`
}

// Apply overwrites the plan's top-level fields with those present in the
// fragment. Absent fields are left untouched.
func (f *PlanFragment) Apply(p *Plan) {
	if f.Goal != nil {
		p.Goal = *f.Goal
	}
	if f.Level != nil {
		p.Level = *f.Level
	}
	if f.DurationWeeks != nil {
		p.DurationWeeks = *f.DurationWeeks
	}
	if f.Notes != nil {
		p.Notes = *f.Notes
	}
	if f.Days != nil {
		for i := range p.Days {
			p.Days[i] = f.Days[i].Clone()
		}
	}
}

// FragmentOf captures the full plan as a fragment, used when saving presets:
// a captured preset carries every top-level field.
func FragmentOf(p *Plan) PlanFragment {
	goal, level, notes := p.Goal, p.Level, p.Notes
	weeks := p.DurationWeeks
	var days [DaysPerWeek]DaySchedule
	for i := range p.Days {
		days[i] = p.Days[i].Clone()
	}
	return PlanFragment{
		Goal:          &goal,
		Level:         &level,
		DurationWeeks: &weeks,
		Notes:         &notes,
		Days:          &days,
	}
}
