package repository

import (
	"context"

	"flowfit/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanRepository stores the single live plan document per client. All
// operations are one-shot round trips; last write wins across sessions.
type PlanRepository interface {
	// Get returns the client's live plan, or ErrNotFound.
	Get(ctx context.Context, tenantID string, clientID primitive.ObjectID) (*domain.Plan, error)
	// Set upserts the live plan, replacing whatever was there.
	Set(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) error
	// Delete removes the live plan document. History is untouched.
	Delete(ctx context.Context, tenantID string, clientID primitive.ObjectID) error
}

// HistoryRepository is the append-only snapshot archive. Records are never
// updated or deleted.
type HistoryRepository interface {
	Append(ctx context.Context, tenantID string, clientID primitive.ObjectID, snap *domain.Snapshot) (primitive.ObjectID, error)
	// List returns all of the client's snapshots, most recent savedAt first.
	List(ctx context.Context, tenantID string, clientID primitive.ObjectID) ([]domain.Snapshot, error)
	GetByID(ctx context.Context, tenantID string, clientID, snapshotID primitive.ObjectID) (*domain.Snapshot, error)
	// Latest returns the client's single most recent snapshot, or ErrNotFound.
	Latest(ctx context.Context, tenantID string, clientID primitive.ObjectID) (*domain.Snapshot, error)
}

// PresetRepository stores tenant-scoped plan templates.
type PresetRepository interface {
	Create(ctx context.Context, tenantID string, preset *domain.Preset) (primitive.ObjectID, error)
	List(ctx context.Context, tenantID string) ([]domain.Preset, error)
	GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.Preset, error)
}

// ClientRepository reads client records and owns their plan-delivery status
// block. Everything else about clients is managed by other parts of the app.
type ClientRepository interface {
	GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.Client, error)
	UpdateDeliveryStatus(ctx context.Context, tenantID string, id primitive.ObjectID, status domain.DeliveryStatus) error
	ClearDeliveryStatus(ctx context.Context, tenantID string, id primitive.ObjectID) error
	// ListExpiringWithin returns clients, across all tenants, whose plan
	// expiry falls within the next d days (and has not passed yet). Used by
	// the background expiry sweep.
	ListExpiringWithin(ctx context.Context, days int) ([]domain.Client, error)
}

// CatalogRepository searches the tenant's exercise library.
type CatalogRepository interface {
	Search(ctx context.Context, tenantID string, filter domain.CatalogFilter) ([]domain.CatalogExercise, error)
	GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.CatalogExercise, error)
}
