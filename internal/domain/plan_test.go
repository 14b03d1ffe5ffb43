package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	day, ok := ParseWeekday("Lunedì")
	require.True(t, ok)
	assert.Equal(t, Monday, day)

	day, ok = ParseWeekday("Domenica")
	require.True(t, ok)
	assert.Equal(t, Sunday, day)

	_, ok = ParseWeekday("Lunedi") // missing accent is not a valid wire key
	assert.False(t, ok)
}

func TestNewPlanInitializesAllDays(t *testing.T) {
	plan := NewPlan()
	for _, w := range Weekdays() {
		assert.NotNil(t, plan.Days[w].Entries, w.Key())
		assert.Empty(t, plan.Days[w].Entries)
	}
}

func TestPlanCloneIsIndependent(t *testing.T) {
	plan := NewPlan()
	plan.Goal = "Massa"
	plan.Days[Monday].Entries = []Entry{exercise("Squat")}
	sent := time.Now()
	plan.SentAt = &sent

	clone := plan.Clone()
	clone.Days[Monday].Entries[0].Sets = 99
	clone.Days[Monday].Entries = append(clone.Days[Monday].Entries, exercise("Stacco"))
	*clone.SentAt = sent.Add(time.Hour)

	assert.Equal(t, DefaultSets, plan.Days[Monday].Entries[0].Sets)
	assert.Len(t, plan.Days[Monday].Entries, 1)
	assert.Equal(t, sent, *plan.SentAt)
}

func TestExerciseCountSkipsMarkers(t *testing.T) {
	plan := NewPlan()
	plan.Days[Monday].Entries = []Entry{
		NewMarkerEntry(SupersetStart),
		exercise("Curl"),
		exercise("French press"),
		NewMarkerEntry(SupersetEnd),
	}
	plan.Days[Thursday].Entries = []Entry{exercise("Squat")}

	assert.Equal(t, 3, plan.ExerciseCount())
}

func TestPlanExpiry(t *testing.T) {
	from := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	plan := NewPlan()
	assert.Nil(t, plan.Expiry(from), "no duration means no expiry")

	plan.DurationWeeks = 4
	expiry := plan.Expiry(from)
	require.NotNil(t, expiry)
	assert.Equal(t, from.AddDate(0, 0, 28), *expiry)
}

func TestFragmentApplyIsShallowTopLevelMerge(t *testing.T) {
	plan := NewPlan()
	plan.Goal = "Forza"
	plan.Level = "Avanzato"
	plan.Notes = "note originali"
	plan.Days[Monday].Entries = []Entry{exercise("Squat")}

	goal := "Definizione"
	frag := PlanFragment{Goal: &goal}
	frag.Apply(plan)

	// Only the fields present in the fragment change.
	assert.Equal(t, "Definizione", plan.Goal)
	assert.Equal(t, "Avanzato", plan.Level)
	assert.Equal(t, "note originali", plan.Notes)
	assert.Len(t, plan.Days[Monday].Entries, 1)
}

func TestFragmentApplyReplacesWholeWeek(t *testing.T) {
	plan := NewPlan()
	plan.Days[Monday].Entries = []Entry{exercise("Squat")}
	plan.Days[Friday].Entries = []Entry{exercise("Stacco")}

	var days [DaysPerWeek]DaySchedule
	for i := range days {
		days[i].Entries = []Entry{}
	}
	days[Wednesday].Entries = []Entry{exercise("Panca piana")}

	frag := PlanFragment{Days: &days}
	frag.Apply(plan)

	// The week is replaced wholesale, never merged day by day.
	assert.Empty(t, plan.Days[Monday].Entries)
	assert.Empty(t, plan.Days[Friday].Entries)
	require.Len(t, plan.Days[Wednesday].Entries, 1)
	assert.Equal(t, "Panca piana", plan.Days[Wednesday].Entries[0].Name)
}

func TestFragmentOfCapturesDetachedCopy(t *testing.T) {
	plan := NewPlan()
	plan.Goal = "Massa"
	plan.Days[Monday].Entries = []Entry{exercise("Squat")}

	frag := FragmentOf(plan)
	plan.Goal = "Forza"
	plan.Days[Monday].Entries[0].Name = "Leg press"

	assert.Equal(t, "Massa", *frag.Goal)
	assert.Equal(t, "Squat", frag.Days[Monday].Entries[0].Name)
}
