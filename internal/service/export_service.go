// internal/service/export_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/export"
	"flowfit/coach-app/internal/repository"
	"flowfit/coach-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrClientNotFound = errors.New("client not found")

// How long an export download link stays valid.
const exportLinkExpiry = time.Hour

// ExportService renders a plan into a file, stores it and returns a
// short-lived download link.
type ExportService interface {
	ExportPlan(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) (string, error)
}

type exportService struct {
	exporter   export.PlanExporter
	fileStore  storage.FileStorage
	clientRepo repository.ClientRepository
}

// NewExportService creates a new instance of exportService.
func NewExportService(exporter export.PlanExporter, fileStore storage.FileStorage, clientRepo repository.ClientRepository) ExportService {
	return &exportService{
		exporter:   exporter,
		fileStore:  fileStore,
		clientRepo: clientRepo,
	}
}

func (s *exportService) ExportPlan(ctx context.Context, tenantID string, clientID primitive.ObjectID, plan *domain.Plan) (string, error) {
	client, err := s.clientRepo.GetByID(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrClientNotFound
		}
		return "", err
	}

	file, err := s.exporter.Export(plan, client.Name)
	if err != nil {
		return "", fmt.Errorf("render export: %w", err)
	}

	objectKey := fmt.Sprintf("%s/%s/exports/%d-%s", tenantID, clientID.Hex(), time.Now().UTC().UnixMilli(), file.Name)
	if err := s.fileStore.PutObject(ctx, objectKey, file.ContentType, file.Data); err != nil {
		return "", fmt.Errorf("store export: %w", err)
	}

	return s.fileStore.GeneratePresignedDownloadURL(ctx, objectKey, exportLinkExpiry)
}
