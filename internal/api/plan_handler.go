package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"flowfit/coach-app/internal/domain"
	"flowfit/coach-app/internal/editor"
	"flowfit/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionTokenHeader carries the editor session token on every request after
// the session is opened. Opening a new session invalidates the old token.
const SessionTokenHeader = "X-Editor-Session"

// PlanHandler drives one client's plan editing session over HTTP.
type PlanHandler struct {
	sessions   *service.SessionManager
	delivery   service.DeliveryService
	versioning service.VersioningService
	catalog    service.CatalogService
	exporter   service.ExportService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(
	sessions *service.SessionManager,
	delivery service.DeliveryService,
	versioning service.VersioningService,
	catalog service.CatalogService,
	exporter service.ExportService,
) *PlanHandler {
	return &PlanHandler{
		sessions:   sessions,
		delivery:   delivery,
		versioning: versioning,
		catalog:    catalog,
		exporter:   exporter,
	}
}

// --- DTOs for API (Data Transfer Objects) ---

type SelectDayRequest struct {
	Day string `json:"giorno" binding:"required"`
}

type AddEntryRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

type AddMarkerRequest struct {
	Kind string `json:"type" binding:"required"`
}

type UpdateEntryFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type MoveEntryRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type DuplicateDayRequest struct {
	Targets []string `json:"targets" binding:"required,min=1"`
}

type RenameDayRequest struct {
	Day  string `json:"giorno" binding:"required"`
	Name string `json:"nome" binding:"required"`
}

type UpdateMetaRequest struct {
	Goal          *string `json:"obiettivo"`
	Level         *string `json:"livello"`
	DurationWeeks *int    `json:"durataSettimane" binding:"omitempty,min=0"`
	Notes         *string `json:"note"`
}

// DayResponse is one weekday in the editor view.
type DayResponse struct {
	Name    string         `json:"nome"`
	Entries []domain.Entry `json:"esercizi"`
}

// PlanResponse is the full editor view: plan content plus session state.
type PlanResponse struct {
	State         string                 `json:"state"`
	ActiveDay     string                 `json:"activeDay"`
	Existing      bool                   `json:"existing"`
	Goal          string                 `json:"obiettivo"`
	Level         string                 `json:"livello"`
	DurationWeeks int                    `json:"durataSettimane,omitempty"`
	Notes         string                 `json:"note"`
	Days          map[string]DayResponse `json:"giorni"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	SentAt        *time.Time             `json:"sentAt,omitempty"`
}

// OpenSessionResponse returns the session token alongside the initial view.
type OpenSessionResponse struct {
	Token string       `json:"sessionToken"`
	Plan  PlanResponse `json:"plan"`
}

// SnapshotResponse is one history entry in list form. The full plan content
// comes back only through a restore.
type SnapshotResponse struct {
	ID            string    `json:"id"`
	Goal          string    `json:"obiettivo"`
	Level         string    `json:"livello"`
	ExerciseCount int       `json:"exerciseCount"`
	SavedAt       time.Time `json:"savedAt"`
}

// MapPlanToResponse converts the editor's in-memory state to its API view.
func MapPlanToResponse(ed *editor.Editor) PlanResponse {
	plan := ed.Plan()
	resp := PlanResponse{
		State:         ed.State().String(),
		ActiveDay:     ed.ActiveDay().Key(),
		Existing:      ed.HadPlanAtLoad(),
		Goal:          plan.Goal,
		Level:         plan.Level,
		DurationWeeks: plan.DurationWeeks,
		Notes:         plan.Notes,
		Days:          make(map[string]DayResponse, domain.DaysPerWeek),
		UpdatedAt:     plan.UpdatedAt,
		SentAt:        plan.SentAt,
	}
	for _, w := range domain.Weekdays() {
		day := plan.Days[w]
		name := day.DisplayName
		if name == "" {
			name = w.DisplayName()
		}
		entries := day.Entries
		if entries == nil {
			entries = []domain.Entry{}
		}
		resp.Days[w.Key()] = DayResponse{Name: name, Entries: entries}
	}
	return resp
}

// --- Helpers ---

func clientIDFromPath(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// resolveSession finds the open editing session for the request's tenant,
// client path param and session token header. On failure the response is
// already written.
func resolveSession(c *gin.Context, sessions *service.SessionManager) (*service.Session, bool) {
	tenantID, err := getTenantIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	clientID, ok := clientIDFromPath(c)
	if !ok {
		return nil, false
	}

	session, err := sessions.Get(tenantID, clientID, c.GetHeader(SessionTokenHeader))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			abortWithError(c, http.StatusNotFound, "No editing session open for this client. Open one first.")
		case errors.Is(err, service.ErrSessionRevoked):
			abortWithError(c, http.StatusConflict, "This editing session was replaced by a newer one.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve editing session.")
		}
		return nil, false
	}
	return session, true
}

func (h *PlanHandler) session(c *gin.Context) (*service.Session, bool) {
	return resolveSession(c, h.sessions)
}

// respondEditorError maps editor state machine errors to HTTP statuses.
func respondEditorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, editor.ErrNotEditing), errors.Is(err, editor.ErrNotLoaded):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, editor.ErrIndexRange):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, editor.ErrInvalidDay),
		errors.Is(err, editor.ErrInvalidMarker),
		errors.Is(err, domain.ErrMarkerNotEditable),
		errors.Is(err, domain.ErrUnknownField):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Editor operation failed.")
	}
}

func entryIndexFromPath(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Entry index must be a number.")
		return 0, false
	}
	return index, true
}

// --- Handler Methods ---

// OpenSession godoc
// @Summary Open an editing session for a client's plan
// @Description Fetches the client's live plan (or starts a blank one) and returns a session token.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 201 {object} OpenSessionResponse
// @Router /clients/{clientId}/plan/session [post]
func (h *PlanHandler) OpenSession(c *gin.Context) {
	tenantID, err := getTenantIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	clientID, ok := clientIDFromPath(c)
	if !ok {
		return
	}

	session, err := h.sessions.Open(c.Request.Context(), tenantID, clientID)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to load plan from store.")
		return
	}

	c.JSON(http.StatusCreated, OpenSessionResponse{
		Token: session.Token,
		Plan:  MapPlanToResponse(session.Editor),
	})
}

// CloseSession discards the session; unsaved edits are lost.
func (h *PlanHandler) CloseSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	h.sessions.Close(session.TenantID, session.ClientID)
	c.Status(http.StatusNoContent)
}

// GetPlan returns the current editor view.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	c.JSON(http.StatusOK, MapPlanToResponse(session.Editor))
}

// EnterEdit switches the session into editing mode.
func (h *PlanHandler) EnterEdit(c *gin.Context) {
	h.withEditor(c, func(ed *editor.Editor) error { return ed.EnterEdit() })
}

// ExitEdit leaves editing mode without saving.
func (h *PlanHandler) ExitEdit(c *gin.Context) {
	h.withEditor(c, func(ed *editor.Editor) error { return ed.ExitEdit() })
}

// withEditor runs one editor mutation under the session lock and responds
// with the refreshed view.
func (h *PlanHandler) withEditor(c *gin.Context, fn func(ed *editor.Editor) error) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	if err := fn(session.Editor); err != nil {
		respondEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(session.Editor))
}

// SelectDay switches the active day.
func (h *PlanHandler) SelectDay(c *gin.Context) {
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, ok := domain.ParseWeekday(req.Day)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Unknown day: "+req.Day)
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error { return ed.SelectDay(day) })
}

// AddEntry appends a catalog exercise to the active day.
func (h *PlanHandler) AddEntry(c *gin.Context) {
	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	tenantID, err := getTenantIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	ex, err := h.catalog.GetByID(c.Request.Context(), tenantID, exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found in catalog.")
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to load exercise from catalog.")
		}
		return
	}

	h.withEditor(c, func(ed *editor.Editor) error { return ed.AddEntry(*ex) })
}

// AddMarker appends a grouping marker to the active day.
func (h *PlanHandler) AddMarker(c *gin.Context) {
	var req AddMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error {
		return ed.AddMarker(domain.MarkerKind(req.Kind))
	})
}

// RemoveEntry deletes one entry from the active day.
func (h *PlanHandler) RemoveEntry(c *gin.Context) {
	index, ok := entryIndexFromPath(c)
	if !ok {
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error { return ed.RemoveEntry(index) })
}

// UpdateEntryField patches one prescription field of an entry.
func (h *PlanHandler) UpdateEntryField(c *gin.Context) {
	index, ok := entryIndexFromPath(c)
	if !ok {
		return
	}
	var req UpdateEntryFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error {
		return ed.UpdateEntryField(index, domain.EntryField(req.Field), req.Value)
	})
}

// MoveEntry reorders an entry one position up or down.
func (h *PlanHandler) MoveEntry(c *gin.Context) {
	index, ok := entryIndexFromPath(c)
	if !ok {
		return
	}
	var req MoveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error {
		if req.Direction == "up" {
			return ed.MoveEntryUp(index)
		}
		return ed.MoveEntryDown(index)
	})
}

// DuplicateDay copies the active day's entries onto the target days.
func (h *PlanHandler) DuplicateDay(c *gin.Context) {
	var req DuplicateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	targets := make([]domain.Weekday, 0, len(req.Targets))
	for _, key := range req.Targets {
		day, ok := domain.ParseWeekday(key)
		if !ok {
			abortWithError(c, http.StatusBadRequest, "Unknown day: "+key)
			return
		}
		targets = append(targets, day)
	}
	h.withEditor(c, func(ed *editor.Editor) error { return ed.DuplicateDayToOthers(targets) })
}

// ResetDay clears the active day's entries.
func (h *PlanHandler) ResetDay(c *gin.Context) {
	h.withEditor(c, func(ed *editor.Editor) error { return ed.ResetDay() })
}

// RenameDay sets a custom display name for a day.
func (h *PlanHandler) RenameDay(c *gin.Context) {
	var req RenameDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day, ok := domain.ParseWeekday(req.Day)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Unknown day: "+req.Day)
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error { return ed.RenameDay(day, req.Name) })
}

// UpdateMeta patches the plan's top-level fields (goal, level, duration, notes).
func (h *PlanHandler) UpdateMeta(c *gin.Context) {
	var req UpdateMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.withEditor(c, func(ed *editor.Editor) error {
		return ed.UpdateMeta(editor.MetaUpdate{
			Goal:          req.Goal,
			Level:         req.Level,
			DurationWeeks: req.DurationWeeks,
			Notes:         req.Notes,
		})
	})
}

// SaveDraft godoc
// @Summary Save the session's plan as a draft
// @Description Persists the plan, appends a history snapshot and updates the client's delivery status.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} PlanResponse
// @Router /clients/{clientId}/plan/save [post]
func (h *PlanHandler) SaveDraft(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	saved, err := h.delivery.SaveDraft(c.Request.Context(), session.TenantID, session.ClientID, session.Editor.Plan())
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to save plan.")
		return
	}

	session.Editor.Plan().UpdatedAt = saved.UpdatedAt
	c.JSON(http.StatusOK, MapPlanToResponse(session.Editor))
}

// SendToClient godoc
// @Summary Send the session's plan to the client
// @Description Validates, persists with a sent timestamp and queues a delivery notification.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} PlanResponse
// @Failure 422 {object} gin.H "Plan not sendable"
// @Router /clients/{clientId}/plan/send [post]
func (h *PlanHandler) SendToClient(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	firstDelivery := !session.Editor.HadPlanAtLoad()
	sent, err := h.delivery.SendToClient(c.Request.Context(), session.TenantID, session.ClientID, session.Editor.Plan(), firstDelivery)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotSendable) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to send plan.")
		}
		return
	}

	session.Editor.Plan().UpdatedAt = sent.UpdatedAt
	session.Editor.Plan().SentAt = sent.SentAt
	c.JSON(http.StatusOK, MapPlanToResponse(session.Editor))
}

// DeletePlan removes the client's live plan. Requires ?confirm=true; the
// session is closed afterwards since its content no longer matches anything.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	confirmed := c.Query("confirm") == "true"
	err := h.delivery.DeletePlan(c.Request.Context(), session.TenantID, session.ClientID, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeleteNotConfirmed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusBadGateway, "Failed to delete plan.")
		}
		return
	}

	h.sessions.Close(session.TenantID, session.ClientID)
	c.Status(http.StatusNoContent)
}

// ListHistory returns the client's snapshots, most recent first.
func (h *PlanHandler) ListHistory(c *gin.Context) {
	tenantID, err := getTenantIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	clientID, ok := clientIDFromPath(c)
	if !ok {
		return
	}

	snapshots, err := h.versioning.ListHistory(c.Request.Context(), tenantID, clientID)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to load plan history.")
		return
	}

	responses := make([]SnapshotResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = SnapshotResponse{
			ID:            snapshots[i].ID.Hex(),
			Goal:          snapshots[i].Plan.Goal,
			Level:         snapshots[i].Plan.Level,
			ExerciseCount: snapshots[i].Plan.ExerciseCount(),
			SavedAt:       snapshots[i].SavedAt,
		}
	}
	c.JSON(http.StatusOK, responses)
}

// RestoreFromHistory overwrites the session's plan with a snapshot's content.
// Nothing is persisted until the next save.
func (h *PlanHandler) RestoreFromHistory(c *gin.Context) {
	snapshotID, err := primitive.ObjectIDFromHex(c.Param("snapshotId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid snapshot ID format.")
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	err = h.versioning.RestoreFromHistory(c.Request.Context(), session.TenantID, session.ClientID, snapshotID, session.Editor)
	if err != nil {
		if errors.Is(err, service.ErrSnapshotNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to restore snapshot.")
		}
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(session.Editor))
}

// CopyPreviousPlan merges the client's latest snapshot into the session. A
// client with no history gets a notice, not an error.
func (h *PlanHandler) CopyPreviousPlan(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	err := h.versioning.CopyPreviousPlan(c.Request.Context(), session.TenantID, session.ClientID, session.Editor)
	if err != nil {
		if errors.Is(err, service.ErrNoHistory) {
			c.JSON(http.StatusOK, gin.H{
				"copied":  false,
				"message": "Nessuna scheda precedente trovata per questo cliente.",
			})
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to load previous plan.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"copied": true,
		"plan":   MapPlanToResponse(session.Editor),
	})
}

// ExportPlan renders the session's current plan and returns a short-lived
// download link.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()

	url, err := h.exporter.ExportPlan(c.Request.Context(), session.TenantID, session.ClientID, session.Editor.Plan())
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusBadGateway, "Failed to export plan.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
