package export

import (
	"encoding/json"
	"testing"

	"flowfit/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONExporter(t *testing.T) {
	plan := domain.NewPlan()
	plan.Goal = "Massa"
	plan.Level = "Intermedio"
	plan.Days[domain.Monday].DisplayName = "Gambe"
	plan.Days[domain.Monday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Squat"}),
	}

	file, err := JSONExporter{}.Export(plan, "Mario Rossi")
	require.NoError(t, err)

	assert.Equal(t, "application/json", file.ContentType)
	assert.Regexp(t, `^scheda-allenamento-\d{4}-\d{2}-\d{2}\.json$`, file.Name)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(file.Data, &doc))
	assert.Equal(t, "Mario Rossi", doc["cliente"])
	assert.Equal(t, "Massa", doc["obiettivo"])

	days, ok := doc["giorni"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, days, domain.DaysPerWeek)

	monday, ok := days["Lunedì"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Gambe", monday["nome"])

	// A day without a custom name falls back to the weekday name.
	tuesday, ok := days["Martedì"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Martedì", tuesday["nome"])
	assert.Empty(t, tuesday["esercizi"])
}
