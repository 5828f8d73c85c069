// Admin HTTP handlers.
//
// This file exposes the registry control endpoints:
//   - GET  /registry                (state snapshot: admin, paused, counters)
//   - POST /registry/pause          (admin only)
//   - POST /registry/unpause        (admin only)
//   - PUT  /registry/admin          (transfer adminship, admin only)
//
// Pause, unpause, and admin change are gated by authorization, not by the
// pause flag itself — a paused registry can always be administered.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SetAdminRequest is the JSON payload for transferring adminship.
type SetAdminRequest struct {
	Admin string `json:"admin" binding:"required" example:"carol"`
}

// RegistryStateResponse is the control-state snapshot returned by GET /registry.
type RegistryStateResponse struct {
	Admin       string `json:"admin"         example:"admin"`
	Paused      bool   `json:"paused"        example:"false"`
	LastTokenID uint64 `json:"last_token_id" example:"7"`
	LastLogID   uint64 `json:"last_log_id"   example:"12"`
}

// GetRegistryState godoc
// @ID          getRegistryState
// @Summary     Registry control state
// @Tags        Registry
// @Produce     json
// @Success     200  {object} handlers.RegistryStateResponse
// @Router      /registry [get]
func (h *Handlers) GetRegistryState(c *gin.Context) {
	st, err := h.reg.State(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, RegistryStateResponse{
		Admin:       st.Admin,
		Paused:      st.Paused,
		LastTokenID: st.LastTokenID,
		LastLogID:   st.LastLogID,
	})
}

// Pause godoc
// @ID          pauseRegistry
// @Summary     Pause all registry mutations
// @Tags        Registry
// @Produce     json
//
// @Param       X-Caller-ID  header  string  true  "Caller identity"  example(admin)
//
// @Success     204  {string} string "No Content"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the admin (103)"
// @Router      /registry/pause [post]
func (h *Handlers) Pause(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	if err := h.reg.Pause(c.Request.Context(), caller); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// Unpause godoc
// @ID          unpauseRegistry
// @Summary     Resume registry mutations
// @Tags        Registry
// @Produce     json
//
// @Param       X-Caller-ID  header  string  true  "Caller identity"  example(admin)
//
// @Success     204  {string} string "No Content"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the admin (103)"
// @Router      /registry/unpause [post]
func (h *Handlers) Unpause(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	if err := h.reg.Unpause(c.Request.Context(), caller); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// SetAdmin godoc
// @ID          setRegistryAdmin
// @Summary     Transfer registry adminship
// @Tags        Registry
// @Accept      json
// @Produce     json
//
// @Param       X-Caller-ID  header  string  true  "Caller identity"  example(admin)
// @Param       body         body    handlers.SetAdminRequest  true  "New admin"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid admin identity (105)"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the admin (103)"
// @Router      /registry/admin [put]
func (h *Handlers) SetAdmin(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Admin) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "admin required")
		return
	}
	if err := h.reg.SetAdmin(c.Request.Context(), caller, req.Admin); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
