package service

import (
	"context"
	"testing"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func loadedEditor(t *testing.T, plan *domain.Plan) *editor.Editor {
	t.Helper()
	ed := editor.New()
	require.NoError(t, ed.Load(plan))
	return ed
}

func snapshotWithGoal(goal string, savedAt time.Time) *domain.Snapshot {
	plan := domain.NewPlan()
	plan.Goal = goal
	plan.Days[domain.Monday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Squat"}),
	}
	return &domain.Snapshot{Plan: *plan, SavedAt: savedAt}
}

func TestRestoreFromHistoryOnlyRewritesEditor(t *testing.T) {
	historyRepo := newFakeHistoryRepo()
	svc := NewVersioningService(historyRepo, newFakePresetRepo())
	clientID := primitive.NewObjectID()

	snapID, err := historyRepo.Append(context.Background(), testTenant, clientID, snapshotWithGoal("Forza", time.Now()))
	require.NoError(t, err)

	current := domain.NewPlan()
	current.Goal = "Massa"
	ed := loadedEditor(t, current)

	require.NoError(t, svc.RestoreFromHistory(context.Background(), testTenant, clientID, snapID, ed))

	assert.Equal(t, "Forza", ed.Plan().Goal)
	assert.Len(t, ed.Plan().Days[domain.Monday].Entries, 1)
	assert.Equal(t, editor.StateEditing, ed.State(), "restored content diverges from the store")
	assert.Equal(t, 1, historyRepo.appendCalls, "restore itself never writes")
}

func TestRestoreFromHistoryUnknownSnapshot(t *testing.T) {
	svc := NewVersioningService(newFakeHistoryRepo(), newFakePresetRepo())
	ed := loadedEditor(t, domain.NewPlan())

	err := svc.RestoreFromHistory(context.Background(), testTenant, primitive.NewObjectID(), primitive.NewObjectID(), ed)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestCopyPreviousPlanUsesLatestSnapshot(t *testing.T) {
	historyRepo := newFakeHistoryRepo()
	svc := NewVersioningService(historyRepo, newFakePresetRepo())
	clientID := primitive.NewObjectID()

	older := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	_, err := historyRepo.Append(context.Background(), testTenant, clientID, snapshotWithGoal("Forza", older))
	require.NoError(t, err)
	_, err = historyRepo.Append(context.Background(), testTenant, clientID, snapshotWithGoal("Definizione", newer))
	require.NoError(t, err)

	ed := loadedEditor(t, nil)
	require.NoError(t, svc.CopyPreviousPlan(context.Background(), testTenant, clientID, ed))
	assert.Equal(t, "Definizione", ed.Plan().Goal)
}

func TestCopyPreviousPlanWithoutHistory(t *testing.T) {
	svc := NewVersioningService(newFakeHistoryRepo(), newFakePresetRepo())
	ed := loadedEditor(t, nil)

	err := svc.CopyPreviousPlan(context.Background(), testTenant, primitive.NewObjectID(), ed)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestSaveAsPresetValidatesName(t *testing.T) {
	svc := NewVersioningService(newFakeHistoryRepo(), newFakePresetRepo())

	_, err := svc.SaveAsPreset(context.Background(), testTenant, "   ", domain.NewPlan())
	assert.ErrorIs(t, err, ErrPresetNameEmpty)

	preset, err := svc.SaveAsPreset(context.Background(), testTenant, "  Ipertrofia 4 giorni  ", domain.NewPlan())
	require.NoError(t, err)
	assert.Equal(t, "Ipertrofia 4 giorni", preset.Name)
	assert.False(t, preset.ID.IsZero())
}

func TestPresetRoundTripThroughImport(t *testing.T) {
	presetRepo := newFakePresetRepo()
	svc := NewVersioningService(newFakeHistoryRepo(), presetRepo)

	source := domain.NewPlan()
	source.Goal = "Massa"
	source.DurationWeeks = 6
	source.Days[domain.Tuesday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Stacco"}),
	}
	preset, err := svc.SaveAsPreset(context.Background(), testTenant, "Posteriori", source)
	require.NoError(t, err)

	// Mutating the source after capture must not leak into the preset.
	source.Days[domain.Tuesday].Entries[0].Name = "Leg curl"

	ed := loadedEditor(t, nil)
	require.NoError(t, svc.ImportPreset(context.Background(), testTenant, preset.ID, ed))

	assert.Equal(t, "Massa", ed.Plan().Goal)
	assert.Equal(t, 6, ed.Plan().DurationWeeks)
	require.Len(t, ed.Plan().Days[domain.Tuesday].Entries, 1)
	assert.Equal(t, "Stacco", ed.Plan().Days[domain.Tuesday].Entries[0].Name)
}

func TestImportPresetPartialFragmentLeavesOtherFields(t *testing.T) {
	presetRepo := newFakePresetRepo()
	svc := NewVersioningService(newFakeHistoryRepo(), presetRepo)

	goal := "Definizione"
	id, err := presetRepo.Create(context.Background(), testTenant, &domain.Preset{
		Name: "Solo obiettivo",
		Data: domain.PlanFragment{Goal: &goal},
	})
	require.NoError(t, err)

	current := domain.NewPlan()
	current.Level = "Avanzato"
	current.Days[domain.Monday].Entries = []domain.Entry{
		domain.NewExerciseEntry(domain.CatalogExercise{Name: "Squat"}),
	}
	ed := loadedEditor(t, current)

	require.NoError(t, svc.ImportPreset(context.Background(), testTenant, id, ed))

	assert.Equal(t, "Definizione", ed.Plan().Goal)
	assert.Equal(t, "Avanzato", ed.Plan().Level, "fields absent from the preset stay put")
	assert.Len(t, ed.Plan().Days[domain.Monday].Entries, 1)
}

func TestImportPresetUnknown(t *testing.T) {
	svc := NewVersioningService(newFakeHistoryRepo(), newFakePresetRepo())
	ed := loadedEditor(t, nil)

	err := svc.ImportPreset(context.Background(), testTenant, primitive.NewObjectID(), ed)
	assert.ErrorIs(t, err, ErrPresetNotFound)
}
