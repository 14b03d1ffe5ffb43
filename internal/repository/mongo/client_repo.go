// internal/repository/mongo/client_repo.go
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

const clientCollectionName = "clients"

// mongoClientRepository implements repository.ClientRepository. Client
// documents are created and managed elsewhere in the application; this repo
// only reads them and updates the schedaAllenamento status block.
type mongoClientRepository struct {
	collection *mongo.Collection
}

// NewMongoClientRepository creates a new client repository.
func NewMongoClientRepository(db *mongo.Database) repository.ClientRepository {
	return &mongoClientRepository{
		collection: db.Collection(clientCollectionName),
	}
}

// GetByID retrieves a client record.
func (r *mongoClientRepository) GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.Client, error) {
	var client domain.Client
	filter := bson.M{"_id": id, "tenantId": tenantID}
	err := r.collection.FindOne(ctx, filter).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// UpdateDeliveryStatus overwrites the client's workout-plan delivery block.
func (r *mongoClientRepository) UpdateDeliveryStatus(ctx context.Context, tenantID string, id primitive.ObjectID, status domain.DeliveryStatus) error {
	filter := bson.M{"_id": id, "tenantId": tenantID}
	update := bson.M{"$set": bson.M{"schedaAllenamento": status}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearDeliveryStatus marks the plan as not delivered and drops its dates.
func (r *mongoClientRepository) ClearDeliveryStatus(ctx context.Context, tenantID string, id primitive.ObjectID) error {
	return r.UpdateDeliveryStatus(ctx, tenantID, id, domain.DeliveryStatus{})
}

// ListExpiringWithin returns clients, across all tenants, whose plan expiry
// is between now and now+days. Used by the daily expiry sweep.
func (r *mongoClientRepository) ListExpiringWithin(ctx context.Context, days int) ([]domain.Client, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"schedaAllenamento.consegnata": true,
		"schedaAllenamento.scadenza": bson.M{
			"$gte": now,
			"$lte": now.AddDate(0, 0, days),
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "schedaAllenamento.scadenza", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []domain.Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// EnsureClientIndexes creates necessary indexes. Call during startup.
func EnsureClientIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "schedaAllenamento.scadenza", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
