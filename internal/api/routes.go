package api

import (
	"net/http"

	"flowfit/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler under /api/v1. All plan editing routes
// require a coach token; the tenant claim scopes every lookup.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	sessions *service.SessionManager,
	delivery service.DeliveryService,
	versioning service.VersioningService,
	catalog service.CatalogService,
	exporter service.ExportService,
) {
	planHandler := NewPlanHandler(sessions, delivery, versioning, catalog, exporter)
	presetHandler := NewPresetHandler(sessions, versioning)
	catalogHandler := NewCatalogHandler(catalog)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(authMiddleware, RoleMiddleware(RoleCoach))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			tenantID, _ := getTenantIDFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID, "tenantId": tenantID})
		})

		// --- Exercise Catalog ---
		protected.GET("/exercises", catalogHandler.SearchExercises)

		// --- Preset Library ---
		protected.GET("/presets", presetHandler.ListPresets)

		// --- Plan Editing Session ---
		planGroup := protected.Group("/clients/:clientId/plan")
		{
			planGroup.POST("/session", planHandler.OpenSession)
			planGroup.DELETE("/session", planHandler.CloseSession)

			planGroup.GET("", planHandler.GetPlan)
			planGroup.PATCH("", planHandler.UpdateMeta)
			planGroup.DELETE("", planHandler.DeletePlan)

			planGroup.POST("/edit", planHandler.EnterEdit)
			planGroup.DELETE("/edit", planHandler.ExitEdit)

			planGroup.PUT("/day", planHandler.SelectDay)
			planGroup.POST("/day/duplicate", planHandler.DuplicateDay)
			planGroup.POST("/day/reset", planHandler.ResetDay)
			planGroup.PUT("/day/name", planHandler.RenameDay)

			planGroup.POST("/entries", planHandler.AddEntry)
			planGroup.DELETE("/entries/:index", planHandler.RemoveEntry)
			planGroup.PATCH("/entries/:index", planHandler.UpdateEntryField)
			planGroup.POST("/entries/:index/move", planHandler.MoveEntry)
			planGroup.POST("/markers", planHandler.AddMarker)

			planGroup.POST("/save", planHandler.SaveDraft)
			planGroup.POST("/send", planHandler.SendToClient)

			planGroup.GET("/history", planHandler.ListHistory)
			planGroup.POST("/history/:snapshotId/restore", planHandler.RestoreFromHistory)
			planGroup.POST("/copy-previous", planHandler.CopyPreviousPlan)

			planGroup.POST("/presets", presetHandler.SaveAsPreset)
			planGroup.POST("/presets/:presetId/import", presetHandler.ImportPreset)

			planGroup.POST("/export", planHandler.ExportPlan)
		}
	}
}
