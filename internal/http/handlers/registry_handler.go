// Registry HTTP handlers.
//
// This file exposes REST endpoints for the token registry:
//   - POST   /tokens                      (mint)
//   - POST   /tokens/{id}/transfer        (transfer ownership)
//   - DELETE /tokens/{id}                 (burn)
//   - PUT    /tokens/{id}/description     (update metadata description)
//   - POST   /tokens/{id}/repair-logs     (append repair log)
//   - GET    /tokens/last-id              (last assigned token id)
//   - GET    /tokens/{id}                 (laptop details)
//   - GET    /tokens/{id}/owner           (current owner; success with null when absent)
//   - GET    /tokens/{id}/ownership       (verify a specific identity)
//   - GET    /tokens/{id}/repair-logs     (ordered logs; 404/101 when token missing)
//   - GET    /repair-logs/{id}            (single log, survives burns)
//
// Handlers are transport-thin: they validate input, call the registry
// service, and translate results into HTTP responses. The owner endpoint and
// the repair-logs list endpoint treat a missing token differently on
// purpose — the former reports success with an absent value, the latter
// fails with registry code 101. Both behaviors are contractual.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
	"github.com/dkaravias/go-laptop-registry/internal/http/middleware"
	"github.com/dkaravias/go-laptop-registry/internal/repo"
	"github.com/dkaravias/go-laptop-registry/internal/services"
	"github.com/dkaravias/go-laptop-registry/internal/utils"
)

//
// Service contract (context-aware)
//

// RegistryService defines the registry facade operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use; all mutations
// are serialized internally.
type RegistryService interface {
	// Mint creates a token owned by caller and returns its id.
	Mint(ctx context.Context, caller, serial string, description *string) (uint64, error)
	// Transfer reassigns ownership of a token from sender to recipient.
	Transfer(ctx context.Context, caller string, id uint64, sender, recipient string) error
	// Burn destroys a token and its metadata; repair logs survive.
	Burn(ctx context.Context, caller string, id uint64) error
	// UpdateDescription replaces a token's metadata description.
	UpdateDescription(ctx context.Context, caller string, id uint64, description string) error
	// AppendRepairLog records a repair event and returns the new log id.
	AppendRepairLog(ctx context.Context, caller string, id uint64, description, shop string) (uint64, error)

	// Pause / Unpause toggle the global mutation gate (admin only).
	Pause(ctx context.Context, caller string) error
	Unpause(ctx context.Context, caller string) error
	// SetAdmin transfers adminship (admin only).
	SetAdmin(ctx context.Context, caller, newAdmin string) error

	// Read accessors.
	LastTokenID(ctx context.Context) (uint64, error)
	Owner(ctx context.Context, id uint64) (string, bool, error)
	VerifyOwnership(ctx context.Context, id uint64, identity string) (bool, error)
	Details(ctx context.Context, id uint64) (*services.LaptopDetails, error)
	GetRepairLog(ctx context.Context, logID uint64) (*domain.RepairLog, error)
	AllRepairLogs(ctx context.Context, id uint64) ([]domain.RepairLog, error)
	State(ctx context.Context) (*domain.RegistryState, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the registry. It depends on the
// abstract service interface to keep transport concerns separate from the
// facade's business logic; the DB handle is used only for replay receipts.
type Handlers struct {
	reg        RegistryService
	db         *gorm.DB
	receiptTTL time.Duration
}

// New constructs a Handlers instance bound to the given registry service.
// db and receiptTTL configure idempotency receipts; a nil db disables them.
func New(reg RegistryService, db *gorm.DB, receiptTTL time.Duration) *Handlers {
	return &Handlers{reg: reg, db: db, receiptTTL: receiptTTL}
}

// callerID extracts the caller identity from the Gin context (set by
// upstream middleware) or the X-Caller-ID header. Mutating endpoints treat
// an empty result as a bad request; the core never invents an identity.
func callerID(c *gin.Context) string {
	if v, ok := c.Get("callerID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		return strings.TrimSpace(c.GetHeader("X-Caller-ID"))
	}
	return ""
}

//
// DTOs
//

// MintRequest is the JSON payload for minting a token.
type MintRequest struct {
	// Serial is the laptop serial (1–50 bytes).
	Serial string `json:"serial" binding:"required" example:"SERIAL123"`
	// Description optionally attaches descriptive text (≤256 bytes).
	// Omitting the field means "no description", which is distinct from "".
	Description *string `json:"description,omitempty" example:"Test Laptop"`
}

// MintResponse returns the id assigned to a freshly minted token.
type MintResponse struct {
	ID uint64 `json:"id" example:"1"`
}

// TransferRequest is the JSON payload for an ownership transfer.
type TransferRequest struct {
	Sender    string `json:"sender"    binding:"required" example:"alice"`
	Recipient string `json:"recipient" binding:"required" example:"bob"`
}

// UpdateDescriptionRequest is the JSON payload for a description update.
// The field is required but may be the empty string.
type UpdateDescriptionRequest struct {
	Description *string `json:"description" binding:"required" example:"Refurbished 2026"`
}

// AppendRepairLogRequest is the JSON payload for recording a repair event.
type AppendRepairLogRequest struct {
	Description string `json:"description" example:"Screen repaired"`
	Shop        string `json:"shop" binding:"required" example:"shop-x"`
}

// AppendRepairLogResponse returns the id assigned to a new repair log.
type AppendRepairLogResponse struct {
	ID uint64 `json:"id" example:"1"`
}

// LastTokenIDResponse reports the registry's token counter.
type LastTokenIDResponse struct {
	LastTokenID uint64 `json:"last_token_id" example:"7"`
}

// OwnerResponse reports a token's owner. Found is false — and Owner null —
// for a token that was never minted or has been burned; the request still
// succeeds.
type OwnerResponse struct {
	Owner *string `json:"owner" example:"alice"`
	Found bool    `json:"found" example:"true"`
}

// OwnershipResponse is the result of verifying a specific identity.
type OwnershipResponse struct {
	Owned bool `json:"owned" example:"true"`
}

// DetailsResponse wraps the laptop read model with a found flag; absent
// tokens yield found=false with a null laptop, not an error.
type DetailsResponse struct {
	Laptop *services.LaptopDetails `json:"laptop"`
	Found  bool                    `json:"found" example:"true"`
}

// RepairLogResponse wraps a single repair log with a found flag.
type RepairLogResponse struct {
	Log   *domain.RepairLog `json:"log"`
	Found bool              `json:"found" example:"true"`
}

// RepairLogsResponse lists a token's repair logs in append order.
type RepairLogsResponse struct {
	TokenID uint64             `json:"token_id" example:"1"`
	Logs    []domain.RepairLog `json:"logs"`
}

//
// Helpers
//

// pathID parses the :id path parameter; on failure it writes a 400 and
// reports ok=false.
func pathID(c *gin.Context) (uint64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
	}
	return id, ok
}

// requireCaller fetches the caller identity or writes a 400.
func requireCaller(c *gin.Context) (string, bool) {
	caller := callerID(c)
	if caller == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "X-Caller-ID header required")
		return "", false
	}
	return caller, true
}

// replayReceipt serves a previously stored result when the idempotency
// middleware flagged this request as a replay. Returns true when the
// response has been written.
func (h *Handlers) replayReceipt(c *gin.Context, caller, scope string) bool {
	if h.db == nil || !middleware.IsReplay(c) {
		return false
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return false
	}
	rec, err := repo.GetReceipt(c.Request.Context(), h.db, caller, scope, key, time.Now().UTC())
	if err != nil || rec == nil {
		return false
	}
	c.Header("Idempotency-Replayed", "true")
	ok2 := rec.Status
	c.JSON(ok2, gin.H{"id": rec.ResourceID})
	return true
}

// storeReceipt persists the result of a completed mutation for future
// replays. Failures are deliberately non-fatal: the operation itself
// already committed.
func (h *Handlers) storeReceipt(c *gin.Context, caller, scope string, resourceID uint64, status int) {
	if h.db == nil {
		return
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return
	}
	if _, err := repo.CreateReceipt(c.Request.Context(), h.db, caller, scope, key, resourceID, status, h.receiptTTL); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("store receipt")
	}
}

//
// Handlers — mutations
//

// Mint godoc
// @ID          mintToken
// @Summary     Mint a new token
// @Description Creates a token owned by the caller with laptop metadata and an empty repair history.
// @Tags        Tokens
// @Accept      json
// @Produce     json
//
// @Param       X-Caller-ID      header  string  true   "Caller identity"  example(alice)
// @Param       Idempotency-Key  header  string  false  "Safe-retry key"
// @Param       body             body    handlers.MintRequest  true  "Mint payload"
//
// @Success     201  {object}  handlers.MintResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure (registry code 105)"
// @Failure     409  {object}  handlers.ErrorResponse  "Registry paused (registry code 104)"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tokens [post]
func (h *Handlers) Mint(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	if h.replayReceipt(c, caller, "mint") {
		return
	}

	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.reg.Mint(c.Request.Context(), caller, req.Serial, req.Description)
	if err != nil {
		failFromService(c, err)
		return
	}
	h.storeReceipt(c, caller, "mint", id, http.StatusCreated)
	ok(c, http.StatusCreated, MintResponse{ID: id})
}

// Transfer godoc
// @ID          transferToken
// @Summary     Transfer token ownership
// @Description Reassigns a token from sender to recipient. The caller must be the sender and current owner.
// @Tags        Tokens
// @Accept      json
// @Produce     json
//
// @Param       X-Caller-ID  header  string  true  "Caller identity"  example(alice)
// @Param       id           path    int     true  "Token id"         minimum(1)
// @Param       body         body    handlers.TransferRequest  true  "Transfer payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request or invalid recipient (105)"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the owner (100)"
// @Failure     409  {object} handlers.ErrorResponse "Registry paused (104)"
// @Router      /tokens/{id}/transfer [post]
func (h *Handlers) Transfer(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	id, oki := pathID(c)
	if !oki {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "sender and recipient required")
		return
	}

	if err := h.reg.Transfer(c.Request.Context(), caller, id, req.Sender, req.Recipient); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// Burn godoc
// @ID          burnToken
// @Summary     Burn a token
// @Description Destroys a token and its metadata. Repair-log entries remain retrievable by log id.
// @Tags        Tokens
// @Produce     json
//
// @Param       X-Caller-ID  header  string  true  "Caller identity"  example(alice)
// @Param       id           path    int     true  "Token id"         minimum(1)
//
// @Success     204  {string} string "No Content"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the owner (100)"
// @Failure     409  {object} handlers.ErrorResponse "Registry paused (104)"
// @Router      /tokens/{id} [delete]
func (h *Handlers) Burn(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	id, oki := pathID(c)
	if !oki {
		return
	}

	if err := h.reg.Burn(c.Request.Context(), caller, id); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// UpdateDescription godoc
// @ID          updateTokenDescription
// @Summary     Update a token's description
// @Description Replaces the metadata description of a token owned by the caller.
// @Tags        Tokens
// @Accept      json
// @Produce     json
//
// @Param       X-Caller-ID  header  string  true  "Caller identity"  example(alice)
// @Param       id           path    int     true  "Token id"         minimum(1)
// @Param       body         body    handlers.UpdateDescriptionRequest  true  "New description"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Validation failure (105)"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the owner (100)"
// @Failure     404  {object} handlers.ErrorResponse "Token not found (101)"
// @Failure     409  {object} handlers.ErrorResponse "Registry paused (104)"
// @Router      /tokens/{id}/description [put]
func (h *Handlers) UpdateDescription(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	id, oki := pathID(c)
	if !oki {
		return
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "description required (may be empty)")
		return
	}

	if err := h.reg.UpdateDescription(c.Request.Context(), caller, id, *req.Description); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// AppendRepairLog godoc
// @ID          appendRepairLog
// @Summary     Append a repair log
// @Description Records an immutable repair event against a token owned by the caller and returns the new log id.
// @Tags        RepairLogs
// @Accept      json
// @Produce     json
//
// @Param       X-Caller-ID      header  string  true   "Caller identity"  example(alice)
// @Param       Idempotency-Key  header  string  false  "Safe-retry key"
// @Param       id               path    int     true   "Token id"         minimum(1)
// @Param       body             body    handlers.AppendRepairLogRequest  true  "Repair log payload"
//
// @Success     201  {object} handlers.AppendRepairLogResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation failure (105)"
// @Failure     403  {object} handlers.ErrorResponse "Caller is not the owner (100)"
// @Failure     404  {object} handlers.ErrorResponse "Token not found (101)"
// @Failure     409  {object} handlers.ErrorResponse "Paused (104) or capacity reached (106)"
// @Router      /tokens/{id}/repair-logs [post]
func (h *Handlers) AppendRepairLog(c *gin.Context) {
	caller, okc := requireCaller(c)
	if !okc {
		return
	}
	id, oki := pathID(c)
	if !oki {
		return
	}
	scope := strconv.FormatUint(id, 10)
	if h.replayReceipt(c, caller, scope) {
		return
	}

	var req AppendRepairLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "shop required")
		return
	}

	logID, err := h.reg.AppendRepairLog(c.Request.Context(), caller, id, req.Description, req.Shop)
	if err != nil {
		failFromService(c, err)
		return
	}
	h.storeReceipt(c, caller, scope, logID, http.StatusCreated)
	ok(c, http.StatusCreated, AppendRepairLogResponse{ID: logID})
}

//
// Handlers — reads
//

// LastTokenID godoc
// @ID          lastTokenID
// @Summary     Last assigned token id
// @Tags        Tokens
// @Produce     json
// @Success     200  {object} handlers.LastTokenIDResponse
// @Router      /tokens/last-id [get]
func (h *Handlers) LastTokenID(c *gin.Context) {
	id, err := h.reg.LastTokenID(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, LastTokenIDResponse{LastTokenID: id})
}

// GetOwner godoc
// @ID          getOwner
// @Summary     Current owner of a token
// @Description Succeeds even when the token does not exist: found=false with a null owner.
// @Tags        Tokens
// @Produce     json
//
// @Param       id  path  int  true  "Token id"  minimum(1)
//
// @Success     200  {object} handlers.OwnerResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id"
// @Router      /tokens/{id}/owner [get]
func (h *Handlers) GetOwner(c *gin.Context) {
	id, oki := pathID(c)
	if !oki {
		return
	}
	owner, found, err := h.reg.Owner(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	resp := OwnerResponse{Found: found}
	if found {
		resp.Owner = &owner
	}
	ok(c, http.StatusOK, resp)
}

// VerifyOwnership godoc
// @ID          verifyOwnership
// @Summary     Verify that an identity owns a token
// @Tags        Tokens
// @Produce     json
//
// @Param       id        path   int     true  "Token id"  minimum(1)
// @Param       identity  query  string  true  "Identity to check"  example(alice)
//
// @Success     200  {object} handlers.OwnershipResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id or missing identity"
// @Router      /tokens/{id}/ownership [get]
func (h *Handlers) VerifyOwnership(c *gin.Context) {
	id, oki := pathID(c)
	if !oki {
		return
	}
	identity := strings.TrimSpace(c.Query("identity"))
	if identity == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "identity query parameter required")
		return
	}
	owned, err := h.reg.VerifyOwnership(c.Request.Context(), id, identity)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, OwnershipResponse{Owned: owned})
}

// GetDetails godoc
// @ID          getLaptopDetails
// @Summary     Laptop details for a token
// @Description Returns metadata, owner, and the ordered repair-log id list; found=false for absent tokens.
// @Tags        Tokens
// @Produce     json
//
// @Param       id  path  int  true  "Token id"  minimum(1)
//
// @Success     200  {object} handlers.DetailsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id"
// @Router      /tokens/{id} [get]
func (h *Handlers) GetDetails(c *gin.Context) {
	id, oki := pathID(c)
	if !oki {
		return
	}
	det, err := h.reg.Details(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, DetailsResponse{Laptop: det, Found: det != nil})
}

// GetRepairLog godoc
// @ID          getRepairLog
// @Summary     Fetch one repair log by log id
// @Description Works for orphaned logs whose originating token has been burned.
// @Tags        RepairLogs
// @Produce     json
//
// @Param       id  path  int  true  "Repair log id"  minimum(1)
//
// @Success     200  {object} handlers.RepairLogResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id"
// @Router      /repair-logs/{id} [get]
func (h *Handlers) GetRepairLog(c *gin.Context) {
	id, oki := pathID(c)
	if !oki {
		return
	}
	rl, err := h.reg.GetRepairLog(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, RepairLogResponse{Log: rl, Found: rl != nil})
}

// ListRepairLogs godoc
// @ID          listRepairLogs
// @Summary     List a token's repair logs in append order
// @Description Unlike the owner endpoint, a missing token is an error here (registry code 101). The asymmetry is contractual.
// @Tags        RepairLogs
// @Produce     json
//
// @Param       id  path  int  true  "Token id"  minimum(1)
//
// @Success     200  {object} handlers.RepairLogsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id"
// @Failure     404  {object} handlers.ErrorResponse "Token not found (101)"
// @Router      /tokens/{id}/repair-logs [get]
func (h *Handlers) ListRepairLogs(c *gin.Context) {
	id, oki := pathID(c)
	if !oki {
		return
	}
	logs, err := h.reg.AllRepairLogs(c.Request.Context(), id)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, RepairLogsResponse{TokenID: id, Logs: logs})
}
