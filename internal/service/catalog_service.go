// internal/service/catalog_service.go
package service

import (
	"context"
	"errors"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrExerciseNotFound = errors.New("catalog exercise not found")

// CatalogService exposes the tenant's exercise library to the editor. The
// library itself is maintained elsewhere; here it is read-only, and chosen
// exercises are snapshotted into plan entries rather than referenced.
type CatalogService interface {
	Search(ctx context.Context, tenantID string, filter domain.CatalogFilter) ([]domain.CatalogExercise, error)
	GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.CatalogExercise, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) Search(ctx context.Context, tenantID string, filter domain.CatalogFilter) ([]domain.CatalogExercise, error) {
	return s.catalogRepo.Search(ctx, tenantID, filter)
}

func (s *catalogService) GetByID(ctx context.Context, tenantID string, id primitive.ObjectID) (*domain.CatalogExercise, error) {
	exercise, err := s.catalogRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}
