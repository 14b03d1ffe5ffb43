package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func exercise(name string) Entry {
	return NewExerciseEntry(CatalogExercise{Name: name})
}

func TestCheckBalance(t *testing.T) {
	tests := []struct {
		name           string
		entries        []Entry
		valid          bool
		offendingIndex int
	}{
		{
			name:           "empty day",
			entries:        nil,
			valid:          true,
			offendingIndex: -1,
		},
		{
			name:           "exercises only",
			entries:        []Entry{exercise("Squat"), exercise("Panca piana")},
			valid:          true,
			offendingIndex: -1,
		},
		{
			name: "closed superset",
			entries: []Entry{
				NewMarkerEntry(SupersetStart),
				exercise("Curl"),
				exercise("French press"),
				NewMarkerEntry(SupersetEnd),
			},
			valid:          true,
			offendingIndex: -1,
		},
		{
			name: "end without start",
			entries: []Entry{
				exercise("Squat"),
				NewMarkerEntry(SupersetEnd),
			},
			valid:          false,
			offendingIndex: 1,
		},
		{
			name: "unclosed start reported at its own index",
			entries: []Entry{
				exercise("Squat"),
				NewMarkerEntry(CircuitStart),
				exercise("Burpees"),
			},
			valid:          false,
			offendingIndex: 1,
		},
		{
			name: "superset and circuit counters are independent",
			entries: []Entry{
				NewMarkerEntry(SupersetStart),
				NewMarkerEntry(CircuitStart),
				exercise("Affondi"),
				NewMarkerEntry(SupersetEnd),
				NewMarkerEntry(CircuitEnd),
			},
			valid:          true,
			offendingIndex: -1,
		},
		{
			name: "circuit end does not close a superset",
			entries: []Entry{
				NewMarkerEntry(SupersetStart),
				exercise("Trazioni"),
				NewMarkerEntry(CircuitEnd),
			},
			valid:          false,
			offendingIndex: 2,
		},
		{
			name: "nested same-kind groups",
			entries: []Entry{
				NewMarkerEntry(SupersetStart),
				NewMarkerEntry(SupersetStart),
				exercise("Rematore"),
				NewMarkerEntry(SupersetEnd),
				NewMarkerEntry(SupersetEnd),
			},
			valid:          true,
			offendingIndex: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckBalance(tt.entries)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.offendingIndex, result.FirstOffendingIndex)
		})
	}
}
