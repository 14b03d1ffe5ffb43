package mongo

import (
	"testing"
	"time"

	"flowfit/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDaysMapRoundTrip(t *testing.T) {
	plan := domain.NewPlan()
	plan.Days[domain.Monday].DisplayName = "Gambe"
	plan.Days[domain.Monday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Squat"}),
		domain.NewMarkerEntry(domain.SupersetStart),
	}

	m := daysToMap(plan.Days)
	require.Len(t, m, domain.DaysPerWeek)
	require.Contains(t, m, "Lunedì")
	assert.Equal(t, "Gambe", m["Lunedì"].DisplayName)

	back := daysFromMap(m)
	assert.Equal(t, plan.Days[domain.Monday].Entries, back[domain.Monday].Entries)
	for _, w := range domain.Weekdays() {
		assert.NotNil(t, back[w].Entries, w.Key())
	}
}

func TestDaysFromMapIgnoresUnknownKeys(t *testing.T) {
	m := map[string]domain.DaySchedule{
		"Lunedì":  {Entries: []domain.Entry{domain.NewExerciseEntry(domain.CatalogExercise{Name: "Squat"})}},
		"Lunedi":  {Entries: []domain.Entry{domain.NewExerciseEntry(domain.CatalogExercise{Name: "Fantasma"})}},
		"Riposo":  {},
		"Sabato":  {DisplayName: "Richiamo"},
	}

	days := daysFromMap(m)

	require.Len(t, days[domain.Monday].Entries, 1)
	assert.Equal(t, "Squat", days[domain.Monday].Entries[0].Name)
	assert.Equal(t, "Richiamo", days[domain.Saturday].DisplayName)
	// Days absent from the document come back initialized, not nil.
	assert.NotNil(t, days[domain.Sunday].Entries)
	assert.Empty(t, days[domain.Sunday].Entries)
}

func TestPlanDocumentRoundTrip(t *testing.T) {
	sent := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	plan := domain.NewPlan()
	plan.Goal = "Massa"
	plan.Level = "Intermedio"
	plan.DurationWeeks = 4
	plan.Notes = "deload in settimana 4"
	plan.SentAt = &sent
	plan.Days[domain.Wednesday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Panca piana"}),
	}

	doc := newPlanDocument("tenant-1", primitive.NewObjectID(), plan)
	assert.Equal(t, "tenant-1", doc.TenantID)

	back := doc.toDomain()
	assert.Equal(t, plan.Goal, back.Goal)
	assert.Equal(t, plan.DurationWeeks, back.DurationWeeks)
	assert.Equal(t, plan.Days[domain.Wednesday].Entries, back.Days[domain.Wednesday].Entries)
	require.NotNil(t, back.SentAt)
	assert.Equal(t, sent, *back.SentAt)
}

func TestFragmentDocumentPreservesAbsentFields(t *testing.T) {
	goal := "Definizione"
	frag := domain.PlanFragment{Goal: &goal}

	doc := newFragmentDocument(frag)
	assert.Nil(t, doc.Level)
	assert.Nil(t, doc.Days)

	back := doc.toDomain()
	require.NotNil(t, back.Goal)
	assert.Equal(t, "Definizione", *back.Goal)
	assert.Nil(t, back.Notes)
	assert.Nil(t, back.Days)
}

func TestFragmentDocumentCarriesWeek(t *testing.T) {
	plan := domain.NewPlan()
	plan.Days[domain.Friday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Stacco"}),
	}
	frag := domain.FragmentOf(plan)

	doc := newFragmentDocument(frag)
	back := doc.toDomain()
	require.NotNil(t, back.Days)
	require.Len(t, back.Days[domain.Friday].Entries, 1)
	assert.Equal(t, "Stacco", back.Days[domain.Friday].Entries[0].Name)
}
