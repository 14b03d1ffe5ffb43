// internal/editor/editor.go
package editor

import (
	"errors"
	"strings"

	"flowfit/coach-app/internal/domain"
)

// State is the editor lifecycle position.
type State int

const (
	// StateLoading means the plan document has not been fetched yet.
	StateLoading State = iota
	// StateNew means no persisted plan exists for the client.
	StateNew
	// StateViewing means a persisted plan is loaded read-only.
	StateViewing
	// StateEditing means mutations are accepted.
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNew:
		return "new"
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	}
	return "unknown"
}

var (
	ErrNotLoaded     = errors.New("editor: plan not loaded yet")
	ErrAlreadyLoaded = errors.New("editor: plan already loaded")
	ErrNotEditing    = errors.New("editor: not in editing mode")
	ErrIndexRange    = errors.New("editor: entry index out of range")
	ErrInvalidMarker = errors.New("editor: unknown marker kind")
	ErrInvalidDay    = errors.New("editor: unknown day")
)

// Editor holds one client's plan during an authoring session. It is a purely
// in-memory state machine: nothing here touches the store, and a single
// goroutine is expected to drive it (the session layer serializes access).
//
// Every entry mutation replaces the affected day's entry slice with a fresh
// copy before changing it. Days therefore never share backing arrays — a day
// duplicated onto others stays independent of its source from that moment on.
type Editor struct {
	state         State
	plan          *domain.Plan
	activeDay     domain.Weekday
	hadPlanAtLoad bool
}

// New returns an editor awaiting its initial load.
func New() *Editor {
	return &Editor{state: StateLoading, activeDay: domain.Monday}
}

// Load installs the fetched plan, or initializes an empty one when the
// client has none yet. It records whether a plan pre-existed, which later
// decides between the "new plan" and "updated plan" delivery notices.
func (e *Editor) Load(plan *domain.Plan) error {
	if e.state != StateLoading {
		return ErrAlreadyLoaded
	}
	if plan == nil {
		e.plan = domain.NewPlan()
		e.state = StateNew
		return nil
	}
	e.plan = plan
	e.hadPlanAtLoad = true
	e.state = StateViewing
	return nil
}

// EnterEdit moves from New or Viewing into Editing.
func (e *Editor) EnterEdit() error {
	switch e.state {
	case StateNew, StateViewing:
		e.state = StateEditing
		return nil
	case StateEditing:
		return nil
	default:
		return ErrNotLoaded
	}
}

// ExitEdit returns to the read-only state matching how the session started.
func (e *Editor) ExitEdit() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if e.hadPlanAtLoad {
		e.state = StateViewing
	} else {
		e.state = StateNew
	}
	return nil
}

func (e *Editor) State() State              { return e.state }
func (e *Editor) ActiveDay() domain.Weekday { return e.activeDay }
func (e *Editor) HadPlanAtLoad() bool       { return e.hadPlanAtLoad }

// Plan exposes the in-memory plan. Callers that persist it must clone first;
// the editor keeps ownership.
func (e *Editor) Plan() *domain.Plan { return e.plan }

// SelectDay switches the day all entry mutations apply to.
func (e *Editor) SelectDay(day domain.Weekday) error {
	if day < domain.Monday || day > domain.Sunday {
		return ErrInvalidDay
	}
	e.activeDay = day
	return nil
}

// mutateEntries runs fn against a private copy of the active day's entries
// and installs whatever slice fn returns.
func (e *Editor) mutateEntries(fn func(entries []domain.Entry) ([]domain.Entry, error)) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	entries, err := fn(domain.CloneEntries(e.plan.Days[e.activeDay].Entries))
	if err != nil {
		return err
	}
	e.plan.Days[e.activeDay].Entries = entries
	return nil
}

// AddEntry appends a catalog exercise snapshot with default prescription to
// the active day.
func (e *Editor) AddEntry(ex domain.CatalogExercise) error {
	return e.mutateEntries(func(entries []domain.Entry) ([]domain.Entry, error) {
		return append(entries, domain.NewExerciseEntry(ex)), nil
	})
}

// AddMarker appends a grouping marker at the tail of the active day. Markers
// are only ever appended; repositioning goes through the move operations.
func (e *Editor) AddMarker(kind domain.MarkerKind) error {
	if !kind.Valid() {
		return ErrInvalidMarker
	}
	return e.mutateEntries(func(entries []domain.Entry) ([]domain.Entry, error) {
		return append(entries, domain.NewMarkerEntry(kind)), nil
	})
}

// RemoveEntry deletes the entry at index from the active day.
func (e *Editor) RemoveEntry(index int) error {
	return e.mutateEntries(func(entries []domain.Entry) ([]domain.Entry, error) {
		if index < 0 || index >= len(entries) {
			return nil, ErrIndexRange
		}
		return append(entries[:index], entries[index+1:]...), nil
	})
}

// UpdateEntryField sets one prescription field of the entry at index.
func (e *Editor) UpdateEntryField(index int, field domain.EntryField, value string) error {
	return e.mutateEntries(func(entries []domain.Entry) ([]domain.Entry, error) {
		if index < 0 || index >= len(entries) {
			return nil, ErrIndexRange
		}
		if err := entries[index].SetField(field, value); err != nil {
			return nil, err
		}
		return entries, nil
	})
}

// MoveEntryUp swaps the entry with its predecessor. Index 0 is a no-op.
func (e *Editor) MoveEntryUp(index int) error {
	return e.mutateEntries(func(entries []domain.Entry) ([]domain.Entry, error) {
		if index < 0 || index >= len(entries) {
			return nil, ErrIndexRange
		}
		if index == 0 {
			return entries, nil
		}
		entries[index-1], entries[index] = entries[index], entries[index-1]
		return entries, nil
	})
}

// MoveEntryDown swaps the entry with its successor. The last index is a no-op.
func (e *Editor) MoveEntryDown(index int) error {
	return e.mutateEntries(func(entries []domain.Entry) ([]domain.Entry, error) {
		if index < 0 || index >= len(entries) {
			return nil, ErrIndexRange
		}
		if index == len(entries)-1 {
			return entries, nil
		}
		entries[index], entries[index+1] = entries[index+1], entries[index]
		return entries, nil
	})
}

// DuplicateDayToOthers deep-copies the active day's entries into each target
// day, replacing their entries while keeping each target's own display name.
// Each target gets its own copy: later edits to the source day do not bleed
// into the targets.
func (e *Editor) DuplicateDayToOthers(targets []domain.Weekday) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	for _, t := range targets {
		if t < domain.Monday || t > domain.Sunday {
			return ErrInvalidDay
		}
	}
	source := e.plan.Days[e.activeDay]
	for _, t := range targets {
		if t == e.activeDay {
			continue
		}
		e.plan.Days[t].Entries = domain.CloneEntries(source.Entries)
	}
	return nil
}

// ResetDay clears the active day's entries, keeping its display name.
func (e *Editor) ResetDay() error {
	return e.mutateEntries(func([]domain.Entry) ([]domain.Entry, error) {
		return []domain.Entry{}, nil
	})
}

// RenameDay sets a day's display name override. A blank name is a no-op.
func (e *Editor) RenameDay(day domain.Weekday, name string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if day < domain.Monday || day > domain.Sunday {
		return ErrInvalidDay
	}
	if strings.TrimSpace(name) == "" {
		return nil
	}
	e.plan.Days[day].DisplayName = name
	return nil
}

// MetaUpdate carries optional top-level plan fields; nil fields are skipped.
type MetaUpdate struct {
	Goal          *string
	Level         *string
	DurationWeeks *int
	Notes         *string
}

// UpdateMeta applies top-level field edits (goal, level, duration, notes).
func (e *Editor) UpdateMeta(u MetaUpdate) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if u.Goal != nil {
		e.plan.Goal = *u.Goal
	}
	if u.Level != nil {
		e.plan.Level = *u.Level
	}
	if u.DurationWeeks != nil {
		e.plan.DurationWeeks = *u.DurationWeeks
	}
	if u.Notes != nil {
		e.plan.Notes = *u.Notes
	}
	return nil
}

// ApplyFragment overwrites the in-memory plan with the fragment's top-level
// fields — the import path for presets, history restores and copy-previous.
// Only the editor content changes; persistence requires an explicit save.
// The editor moves to Editing since content now diverges from the store.
func (e *Editor) ApplyFragment(frag domain.PlanFragment) error {
	if e.state == StateLoading {
		return ErrNotLoaded
	}
	frag.Apply(e.plan)
	e.state = StateEditing
	return nil
}
