package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/app"
)

// SyncHandler exposes the sync agent.
type SyncHandler struct {
	agent *app.SyncAgent
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(agent *app.SyncAgent) *SyncHandler {
	return &SyncHandler{agent: agent}
}

// TriggerSync handles POST /api/v1/sync
// Runs one sync outside the schedule and returns its result.
//
// @Summary Run a sync
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/sync [post]
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	result, err := h.agent.RunOnce(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSyncResultResponse(result))
}

// GetSyncStatus handles GET /api/v1/sync/status
//
// @Summary Last sync run
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/sync/status [get]
func (h *SyncHandler) GetSyncStatus(c *gin.Context) {
	result, ok := h.agent.LastResult()
	if !ok {
		dto.RespondWithCode(c, dto.ErrorCodeNotFound, "no sync run yet")
		return
	}

	c.JSON(http.StatusOK, dto.NewSyncResultResponse(result))
}

// RegisterSyncRoutes registers sync routes on the given router group.
// guard runs before the trigger route.
func (h *SyncHandler) RegisterSyncRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	sync := rg.Group("/sync")
	sync.POST("", guarded(guard, h.TriggerSync)...)
	sync.GET("/status", h.GetSyncStatus)
}
