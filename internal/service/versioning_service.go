// internal/service/versioning_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/editor"
	"flowfit/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoHistory        = errors.New("no previous plan found for this client")
	ErrSnapshotNotFound = errors.New("history snapshot not found")
	ErrPresetNotFound   = errors.New("preset not found")
	ErrPresetNameEmpty  = errors.New("preset name is required")
)

// VersioningService manages the append-only plan history and the tenant's
// preset library. Restores and imports only rewrite the in-memory editor;
// nothing becomes durable until the next explicit save or send.
type VersioningService interface {
	ListHistory(ctx context.Context, tenantID string, clientID primitive.ObjectID) ([]domain.Snapshot, error)
	RestoreFromHistory(ctx context.Context, tenantID string, clientID, snapshotID primitive.ObjectID, ed *editor.Editor) error
	CopyPreviousPlan(ctx context.Context, tenantID string, clientID primitive.ObjectID, ed *editor.Editor) error

	SaveAsPreset(ctx context.Context, tenantID string, name string, plan *domain.Plan) (*domain.Preset, error)
	ListPresets(ctx context.Context, tenantID string) ([]domain.Preset, error)
	ImportPreset(ctx context.Context, tenantID string, presetID primitive.ObjectID, ed *editor.Editor) error
}

type versioningService struct {
	historyRepo repository.HistoryRepository
	presetRepo  repository.PresetRepository
}

// NewVersioningService creates a new instance of versioningService.
func NewVersioningService(historyRepo repository.HistoryRepository, presetRepo repository.PresetRepository) VersioningService {
	return &versioningService{
		historyRepo: historyRepo,
		presetRepo:  presetRepo,
	}
}

// ListHistory returns the client's snapshots, most recent first.
func (s *versioningService) ListHistory(ctx context.Context, tenantID string, clientID primitive.ObjectID) ([]domain.Snapshot, error) {
	return s.historyRepo.List(ctx, tenantID, clientID)
}

// RestoreFromHistory overwrites the editor's plan with a snapshot's content.
// The live document is untouched until the coach saves again.
func (s *versioningService) RestoreFromHistory(ctx context.Context, tenantID string, clientID, snapshotID primitive.ObjectID, ed *editor.Editor) error {
	snap, err := s.historyRepo.GetByID(ctx, tenantID, clientID, snapshotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSnapshotNotFound
		}
		return err
	}
	return ed.ApplyFragment(domain.FragmentOf(&snap.Plan))
}

// CopyPreviousPlan merges the client's own most recent snapshot into the
// editor. With no history at all it reports ErrNoHistory, which callers
// surface as a notice rather than a failure.
func (s *versioningService) CopyPreviousPlan(ctx context.Context, tenantID string, clientID primitive.ObjectID, ed *editor.Editor) error {
	snap, err := s.historyRepo.Latest(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoHistory
		}
		return err
	}
	return ed.ApplyFragment(domain.FragmentOf(&snap.Plan))
}

// SaveAsPreset captures the plan's full current content under a name.
func (s *versioningService) SaveAsPreset(ctx context.Context, tenantID string, name string, plan *domain.Plan) (*domain.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPresetNameEmpty
	}
	preset := &domain.Preset{
		Name:      name,
		Data:      domain.FragmentOf(plan),
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.presetRepo.Create(ctx, tenantID, preset)
	if err != nil {
		return nil, err
	}
	preset.ID = id
	return preset, nil
}

// ListPresets returns the tenant's presets.
func (s *versioningService) ListPresets(ctx context.Context, tenantID string) ([]domain.Preset, error) {
	return s.presetRepo.List(ctx, tenantID)
}

// ImportPreset merges a preset into the editor: a shallow, top-level
// overwrite. Fields absent from the stored preset stay as they are; a
// preset that carries days replaces the whole week.
func (s *versioningService) ImportPreset(ctx context.Context, tenantID string, presetID primitive.ObjectID, ed *editor.Editor) error {
	preset, err := s.presetRepo.GetByID(ctx, tenantID, presetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPresetNotFound
		}
		return err
	}
	return ed.ApplyFragment(preset.Data)
}
