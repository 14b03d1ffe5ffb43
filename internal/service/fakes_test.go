package service

import (
	"context"
	"sort"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

func fakeKey(tenantID string, id primitive.ObjectID) string {
	return tenantID + "/" + id.Hex()
}

type fakePlanRepo struct {
	plans    map[string]*domain.Plan
	setCalls int
	setErr   error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*domain.Plan)}
}

func (r *fakePlanRepo) Get(_ context.Context, tenantID string, clientID primitive.ObjectID) (*domain.Plan, error) {
	plan, ok := r.plans[fakeKey(tenantID, clientID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return plan.Clone(), nil
}

func (r *fakePlanRepo) Set(_ context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) error {
	r.setCalls++
	if r.setErr != nil {
		return r.setErr
	}
	r.plans[fakeKey(tenantID, clientID)] = plan.Clone()
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, tenantID string, clientID primitive.ObjectID) error {
	key := fakeKey(tenantID, clientID)
	if _, ok := r.plans[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, key)
	return nil
}

type fakeHistoryRepo struct {
	snapshots   map[string][]domain.Snapshot
	appendCalls int
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{snapshots: make(map[string][]domain.Snapshot)}
}

func (r *fakeHistoryRepo) Append(_ context.Context, tenantID string, clientID primitive.ObjectID, snap *domain.Snapshot) (primitive.ObjectID, error) {
	r.appendCalls++
	id := primitive.NewObjectID()
	stored := *snap
	stored.ID = id
	stored.Plan = *snap.Plan.Clone()
	key := fakeKey(tenantID, clientID)
	r.snapshots[key] = append(r.snapshots[key], stored)
	return id, nil
}

func (r *fakeHistoryRepo) List(_ context.Context, tenantID string, clientID primitive.ObjectID) ([]domain.Snapshot, error) {
	snaps := append([]domain.Snapshot(nil), r.snapshots[fakeKey(tenantID, clientID)]...)
	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].SavedAt.After(snaps[j].SavedAt) })
	return snaps, nil
}

func (r *fakeHistoryRepo) GetByID(_ context.Context, tenantID string, clientID, snapshotID primitive.ObjectID) (*domain.Snapshot, error) {
	for _, snap := range r.snapshots[fakeKey(tenantID, clientID)] {
		if snap.ID == snapshotID {
			s := snap
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeHistoryRepo) Latest(ctx context.Context, tenantID string, clientID primitive.ObjectID) (*domain.Snapshot, error) {
	snaps, _ := r.List(ctx, tenantID, clientID)
	if len(snaps) == 0 {
		return nil, repository.ErrNotFound
	}
	return &snaps[0], nil
}

type fakePresetRepo struct {
	presets map[string][]domain.Preset
}

func newFakePresetRepo() *fakePresetRepo {
	return &fakePresetRepo{presets: make(map[string][]domain.Preset)}
}

func (r *fakePresetRepo) Create(_ context.Context, tenantID string, preset *domain.Preset) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *preset
	stored.ID = id
	r.presets[tenantID] = append(r.presets[tenantID], stored)
	return id, nil
}

func (r *fakePresetRepo) List(_ context.Context, tenantID string) ([]domain.Preset, error) {
	return append([]domain.Preset(nil), r.presets[tenantID]...), nil
}

func (r *fakePresetRepo) GetByID(_ context.Context, tenantID string, id primitive.ObjectID) (*domain.Preset, error) {
	for _, preset := range r.presets[tenantID] {
		if preset.ID == id {
			p := preset
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeClientRepo struct {
	clients     map[string]*domain.Client
	updateCalls int
	clearCalls  int
	lastStatus  domain.DeliveryStatus
	expiring    []domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *fakeClientRepo) add(client *domain.Client) {
	r.clients[fakeKey(client.TenantID, client.ID)] = client
}

func (r *fakeClientRepo) GetByID(_ context.Context, tenantID string, id primitive.ObjectID) (*domain.Client, error) {
	client, ok := r.clients[fakeKey(tenantID, id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return client, nil
}

func (r *fakeClientRepo) UpdateDeliveryStatus(_ context.Context, tenantID string, id primitive.ObjectID, status domain.DeliveryStatus) error {
	r.updateCalls++
	r.lastStatus = status
	if client, ok := r.clients[fakeKey(tenantID, id)]; ok {
		client.WorkoutPlan = status
	}
	return nil
}

func (r *fakeClientRepo) ClearDeliveryStatus(_ context.Context, tenantID string, id primitive.ObjectID) error {
	r.clearCalls++
	if client, ok := r.clients[fakeKey(tenantID, id)]; ok {
		client.WorkoutPlan = domain.DeliveryStatus{}
	}
	return nil
}

func (r *fakeClientRepo) ListExpiringWithin(_ context.Context, _ int) ([]domain.Client, error) {
	return r.expiring, nil
}

type notice struct {
	taskType string
	tenantID string
	clientID primitive.ObjectID
}

type fakeNotifier struct {
	notices []notice
	err     error
}

func (n *fakeNotifier) record(taskType, tenantID string, client *domain.Client) error {
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, notice{taskType: taskType, tenantID: tenantID, clientID: client.ID})
	return nil
}

func (n *fakeNotifier) NotifyNewPlan(_ context.Context, tenantID string, client *domain.Client, _ *domain.Plan) error {
	return n.record("new", tenantID, client)
}

func (n *fakeNotifier) NotifyUpdatedPlan(_ context.Context, tenantID string, client *domain.Client, _ *domain.Plan) error {
	return n.record("updated", tenantID, client)
}

func (n *fakeNotifier) NotifyExpiring(_ context.Context, tenantID string, client *domain.Client, _ time.Time) error {
	return n.record("expiring", tenantID, client)
}
