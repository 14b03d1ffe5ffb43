// internal/domain/entry.go
package domain

import (
	"errors"
	"strconv"
)

// MarkerKind identifies a grouping bracket inside a day's entry list.
type MarkerKind string

const (
	SupersetStart MarkerKind = "superset-start"
	SupersetEnd   MarkerKind = "superset-end"
	CircuitStart  MarkerKind = "circuit-start"
	CircuitEnd    MarkerKind = "circuit-end"
)

// Valid reports whether the kind is one of the four known markers.
func (k MarkerKind) Valid() bool {
	switch k {
	case SupersetStart, SupersetEnd, CircuitStart, CircuitEnd:
		return true
	}
	return false
}

// IsStart reports whether the kind opens a group.
func (k MarkerKind) IsStart() bool {
	return k == SupersetStart || k == CircuitStart
}

// Entry is one positioned element of a day schedule: either an exercise
// prescription or a grouping marker. The two variants share one struct so
// the persisted shape stays a single heterogeneous array, exactly as
// existing documents have it.
type Entry struct {
	// Exercise fields (snapshot of a catalog exercise plus prescription).
	Name        string `bson:"nome,omitempty" json:"nome,omitempty"`
	Equipment   string `bson:"attrezzo,omitempty" json:"attrezzo,omitempty"`
	MuscleGroup string `bson:"gruppoMuscolare,omitempty" json:"gruppoMuscolare,omitempty"`
	GifURL      string `bson:"gifUrl,omitempty" json:"gifUrl,omitempty"`
	VideoURL    string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Sets        int    `bson:"serie,omitempty" json:"serie,omitempty"`
	Reps        string `bson:"ripetizioni,omitempty" json:"ripetizioni,omitempty"`
	RestSeconds int    `bson:"recupero,omitempty" json:"recupero,omitempty"`
	Note        string `bson:"noteEsercizio,omitempty" json:"noteEsercizio,omitempty"`

	// Marker fields.
	IsMarker bool       `bson:"isMarker,omitempty" json:"isMarker,omitempty"`
	Kind     MarkerKind `bson:"type,omitempty" json:"type,omitempty"`
}

// Default prescription applied when an exercise is added from the catalog.
const (
	DefaultSets        = 3
	DefaultReps        = "10"
	DefaultRestSeconds = 60
)

// NewExerciseEntry snapshots a catalog exercise into an entry with the
// default prescription. The snapshot is intentional: later catalog edits
// must not rewrite plans already authored against the old version.
func NewExerciseEntry(ex CatalogExercise) Entry {
	return Entry{
		Name:        ex.Name,
		Equipment:   ex.Equipment,
		MuscleGroup: ex.MuscleGroup,
		GifURL:      ex.GifURL,
		VideoURL:    ex.VideoURL,
		Sets:        DefaultSets,
		Reps:        DefaultReps,
		RestSeconds: DefaultRestSeconds,
	}
}

// NewMarkerEntry builds a marker entry of the given kind.
func NewMarkerEntry(kind MarkerKind) Entry {
	return Entry{IsMarker: true, Kind: kind}
}

// EntryField names a mutable prescription field, using the wire field names.
type EntryField string

const (
	FieldSets EntryField = "serie"
	FieldReps EntryField = "ripetizioni"
	FieldRest EntryField = "recupero"
	FieldNote EntryField = "noteEsercizio"
)

var (
	ErrMarkerNotEditable = errors.New("markers have no editable fields")
	ErrUnknownField      = errors.New("unknown entry field")
)

// SetField updates a single prescription field from its string form, as
// submitted by the editor. Numeric fields accept an empty string as zero.
func (e *Entry) SetField(field EntryField, value string) error {
	if e.IsMarker {
		return ErrMarkerNotEditable
	}
	switch field {
	case FieldSets:
		n, err := parseCount(value)
		if err != nil {
			return err
		}
		e.Sets = n
	case FieldReps:
		e.Reps = value
	case FieldRest:
		n, err := parseCount(value)
		if err != nil {
			return err
		}
		e.RestSeconds = n
	case FieldNote:
		e.Note = value
	default:
		return ErrUnknownField
	}
	return nil
}

func parseCount(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, errors.New("value must be a non-negative number")
	}
	return n, nil
}
