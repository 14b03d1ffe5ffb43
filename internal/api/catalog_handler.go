package api

import (
	"net/http"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the tenant's read-only exercise library.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CatalogExerciseResponse is one searchable exercise.
type CatalogExerciseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nome"`
	Equipment   string `json:"attrezzo,omitempty"`
	MuscleGroup string `json:"gruppoMuscolare,omitempty"`
	GifURL      string `json:"gifUrl,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// SearchExercises godoc
// @Summary Search the exercise catalog
// @Description Filters by name substring, equipment and muscle group.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param nome query string false "Name substring"
// @Param attrezzo query string false "Equipment"
// @Param gruppoMuscolare query string false "Muscle group"
// @Success 200 {array} CatalogExerciseResponse
// @Router /exercises [get]
func (h *CatalogHandler) SearchExercises(c *gin.Context) {
	tenantID, err := getTenantIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	filter := domain.CatalogFilter{
		Name:        c.Query("nome"),
		Equipment:   c.Query("attrezzo"),
		MuscleGroup: c.Query("gruppoMuscolare"),
	}
	exercises, err := h.catalog.Search(c.Request.Context(), tenantID, filter)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to search exercise catalog.")
		return
	}

	responses := make([]CatalogExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = CatalogExerciseResponse{
			ID:          exercises[i].ID.Hex(),
			Name:        exercises[i].Name,
			Equipment:   exercises[i].Equipment,
			MuscleGroup: exercises[i].MuscleGroup,
			GifURL:      exercises[i].GifURL,
			VideoURL:    exercises[i].VideoURL,
		}
	}
	c.JSON(http.StatusOK, responses)
}
