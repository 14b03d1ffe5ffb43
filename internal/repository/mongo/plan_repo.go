// internal/repository/mongo/plan_repo.go
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

const planCollectionName = "schede_allenamento"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new live-plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

func planFilter(tenantID string, clientID primitive.ObjectID) bson.M {
	return bson.M{"tenantId": tenantID, "clientId": clientID}
}

// Get retrieves the client's live plan.
func (r *mongoPlanRepository) Get(ctx context.Context, tenantID string, clientID primitive.ObjectID) (*domain.Plan, error) {
	var doc planDocument
	err := r.collection.FindOne(ctx, planFilter(tenantID, clientID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Set upserts the live plan document in a single replace. One live document
// per (tenant, client); concurrent editors overwrite each other, last write
// wins.
func (r *mongoPlanRepository) Set(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) error {
	doc := newPlanDocument(tenantID, clientID, plan)
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, planFilter(tenantID, clientID), doc, opts)
	return err
}

// Delete removes the live plan document.
func (r *mongoPlanRepository) Delete(ctx context.Context, tenantID string, clientID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, planFilter(tenantID, clientID))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "clientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
