// internal/repository/mongo/history_repo.go
package mongo

import (
	"context"
	"errors"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollectionName = "schede_allenamento_storico"

// mongoHistoryRepository implements repository.HistoryRepository. The
// collection is insert-only: no update or delete method exists on purpose.
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new snapshot-history repository.
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.Collection(historyCollectionName),
	}
}

// Append inserts one immutable snapshot record.
func (r *mongoHistoryRepository) Append(ctx context.Context, tenantID string, clientID primitive.ObjectID, snap *domain.Snapshot) (primitive.ObjectID, error) {
	doc := newSnapshotDocument(tenantID, clientID, snap)
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted snapshot ID")
	}
	return insertedID, nil
}

// List returns the client's snapshots, newest savedAt first.
func (r *mongoHistoryRepository) List(ctx context.Context, tenantID string, clientID primitive.ObjectID) ([]domain.Snapshot, error) {
	filter := bson.M{"tenantId": tenantID, "clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []snapshotDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	snaps := make([]domain.Snapshot, len(docs))
	for i := range docs {
		snaps[i] = docs[i].toDomain()
	}
	return snaps, nil
}

// GetByID retrieves a single snapshot, scoped to the client so one client's
// history can never be restored into another's editor.
func (r *mongoHistoryRepository) GetByID(ctx context.Context, tenantID string, clientID, snapshotID primitive.ObjectID) (*domain.Snapshot, error) {
	filter := bson.M{"_id": snapshotID, "tenantId": tenantID, "clientId": clientID}
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	snap := doc.toDomain()
	return &snap, nil
}

// Latest returns the client's most recent snapshot.
func (r *mongoHistoryRepository) Latest(ctx context.Context, tenantID string, clientID primitive.ObjectID) (*domain.Snapshot, error) {
	filter := bson.M{"tenantId": tenantID, "clientId": clientID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "savedAt", Value: -1}})

	var doc snapshotDocument
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	snap := doc.toDomain()
	return &snap, nil
}

// EnsureHistoryIndexes creates necessary indexes. Call during startup.
func EnsureHistoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "clientId", Value: 1}, {Key: "savedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
