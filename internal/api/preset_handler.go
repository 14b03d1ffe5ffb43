package api

import (
	"errors"
	"net/http"
	"time"

	"flowfit/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresetHandler manages the tenant's preset library and preset imports into
// an open editing session.
type PresetHandler struct {
	sessions   *service.SessionManager
	versioning service.VersioningService
}

// NewPresetHandler creates a new PresetHandler.
func NewPresetHandler(sessions *service.SessionManager, versioning service.VersioningService) *PresetHandler {
	return &PresetHandler{sessions: sessions, versioning: versioning}
}

type SavePresetRequest struct {
	Name string `json:"nome" binding:"required"`
}

// PresetResponse lists a preset without its full plan payload.
type PresetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListPresets returns every preset of the tenant.
func (h *PresetHandler) ListPresets(c *gin.Context) {
	tenantID, err := getTenantIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	presets, err := h.versioning.ListPresets(c.Request.Context(), tenantID)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to load presets.")
		return
	}

	responses := make([]PresetResponse, len(presets))
	for i := range presets {
		responses[i] = PresetResponse{
			ID:        presets[i].ID.Hex(),
			Name:      presets[i].Name,
			CreatedAt: presets[i].CreatedAt,
		}
	}
	c.JSON(http.StatusOK, responses)
}

// SaveAsPreset captures the session's current plan content under a name.
func (h *PresetHandler) SaveAsPreset(c *gin.Context) {
	var req SavePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	preset, err := h.versioning.SaveAsPreset(c.Request.Context(), session.TenantID, req.Name, session.Editor.Plan())
	if err != nil {
		if errors.Is(err, service.ErrPresetNameEmpty) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to save preset.")
		}
		return
	}

	c.JSON(http.StatusCreated, PresetResponse{
		ID:        preset.ID.Hex(),
		Name:      preset.Name,
		CreatedAt: preset.CreatedAt,
	})
}

// ImportPreset merges a preset into the session's plan. Nothing is persisted
// until the next save.
func (h *PresetHandler) ImportPreset(c *gin.Context) {
	presetID, err := primitive.ObjectIDFromHex(c.Param("presetId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid preset ID format.")
		return
	}

	session, ok := h.resolveSession(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	err = h.versioning.ImportPreset(c.Request.Context(), session.TenantID, presetID, session.Editor)
	if err != nil {
		if errors.Is(err, service.ErrPresetNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to import preset.")
		}
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(session.Editor))
}

func (h *PresetHandler) resolveSession(c *gin.Context) (*service.Session, bool) {
	return resolveSession(c, h.sessions)
}
