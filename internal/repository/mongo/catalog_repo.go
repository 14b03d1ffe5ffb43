// internal/repository/mongo/catalog_repo.go
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

const catalogCollectionName = "esercizi"

// mongoCatalogRepository implements repository.CatalogRepository
type mongoCatalogRepository struct {
	collection *mongo.Collection
}

// NewMongoCatalogRepository creates a new exercise-catalog repository.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		collection: db.Collection(catalogCollectionName),
	}
}

// Search returns the tenant's catalog exercises matching the filter, sorted
// by name.
func (r *mongoCatalogRepository) Search(ctx context.Context, tenantID string, filter domain.CatalogFilter) ([]domain.CatalogExercise, error) {
	query := bson.M{"tenantId": tenantID}
	if filter.Name != "" {
		query["nome"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.Equipment != "" {
		query["attrezzo"] = filter.Equipment
	}
	if filter.MuscleGroup != "" {
		query["gruppoMuscolare"] = filter.MuscleGroup
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.CatalogExercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByID retrieves a single catalog exercise.
func (r *mongoCatalogRepository) GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.CatalogExercise, error) {
	var exercise domain.CatalogExercise
	filter := bson.M{"_id": id, "tenantId": tenantID}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// EnsureCatalogIndexes creates necessary indexes. Call during startup.
func EnsureCatalogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "nome", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "gruppoMuscolare", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
