// internal/repository/mongo/preset_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const presetCollectionName = "preset_allenamento"

// mongoPresetRepository implements repository.PresetRepository
type mongoPresetRepository struct {
	collection *mongo.Collection
}

// NewMongoPresetRepository creates a new preset repository.
func NewMongoPresetRepository(db *mongo.Database) repository.PresetRepository {
	return &mongoPresetRepository{
		collection: db.Collection(presetCollectionName),
	}
}

// Create inserts a new named preset for the tenant.
func (r *mongoPresetRepository) Create(ctx context.Context, tenantID string, preset *domain.Preset) (primitive.ObjectID, error) {
	if preset.Name == "" {
		return primitive.NilObjectID, errors.New("preset requires a name")
	}
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = time.Now().UTC()
	}
	doc := presetDocument{
		TenantID:  tenantID,
		Name:      preset.Name,
		Data:      newFragmentDocument(preset.Data),
		CreatedAt: preset.CreatedAt,
	}
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted preset ID")
	}
	return insertedID, nil
}

// List returns the tenant's presets, newest first.
func (r *mongoPresetRepository) List(ctx context.Context, tenantID string) ([]domain.Preset, error) {
	filter := bson.M{"tenantId": tenantID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []presetDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	presets := make([]domain.Preset, len(docs))
	for i, doc := range docs {
		presets[i] = domain.Preset{
			ID:        doc.ID,
			Name:      doc.Name,
			Data:      doc.Data.toDomain(),
			CreatedAt: doc.CreatedAt,
		}
	}
	return presets, nil
}

// GetByID retrieves a single preset.
func (r *mongoPresetRepository) GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.Preset, error) {
	filter := bson.M{"_id": id, "tenantId": tenantID}
	var doc presetDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &domain.Preset{
		ID:        doc.ID,
		Name:      doc.Name,
		Data:      doc.Data.toDomain(),
		CreatedAt: doc.CreatedAt,
	}, nil
}
