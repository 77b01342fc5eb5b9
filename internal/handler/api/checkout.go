package api

import (
	"errors"
	"net/http"

	"checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/domain/ledger"
	reqdto "checkout-ledger/internal/handler/dto/request"
	resdto "checkout-ledger/internal/handler/dto/response"
	"checkout-ledger/internal/handler/httperr"
	"checkout-ledger/internal/pkg/errs"
	"checkout-ledger/internal/usecase/commands"
	"checkout-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	commands commands.CheckoutCommands
	queries  queries.CheckoutQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, qs queries.CheckoutQueries) *CheckoutHandler {
	return &CheckoutHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Start checkout session
// @Description Fetch order and loyalty data and open a checkout session
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.StartCheckoutRequest true "Order to check out"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/sessions [post]
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req reqdto.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	sessionID, err := h.commands.Start(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrSourceUnavailable) {
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Order details could not be loaded", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.Header("Location", "/api/checkout/sessions/"+sessionID.String())
	h.respondWithSession(c, http.StatusCreated, sessionID)
}

// @Summary Get checkout session
// @Description Current totals, loyalty snapshot and redemption state
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Router /checkout/sessions/{id} [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}
	h.respondWithSession(c, http.StatusOK, sessionID)
}

// @Summary Toggle loyalty redemption
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.ToggleRedemptionRequest true "Checkbox state"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/sessions/{id}/redemption/toggle [post]
func (h *CheckoutHandler) ToggleRedemption(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req reqdto.ToggleRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.ToggleRedemption(sessionID, *req.Enabled); err != nil {
		h.abortWithActionError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, sessionID)
}

// @Summary Set requested redemption points
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.SetPointsRequest true "Raw points input"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/sessions/{id}/redemption/points [post]
func (h *CheckoutHandler) SetRequestedPoints(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req reqdto.SetPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.SetRequestedPoints(sessionID, req.Points); err != nil {
		h.abortWithActionError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, sessionID)
}

// @Summary Apply the current redemption intent
// @Description Validates the requested points and recomputes totals
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/sessions/{id}/redemption/apply [post]
func (h *CheckoutHandler) ApplyRedemption(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.commands.Apply(sessionID); err != nil {
		h.abortWithActionError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, sessionID)
}

// @Summary Clear any applied redemption
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/sessions/{id}/redemption/clear [post]
func (h *CheckoutHandler) ClearRedemption(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.commands.Clear(sessionID); err != nil {
		h.abortWithActionError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, sessionID)
}

// @Summary Submit payment
// @Description Locks the payable amount and runs the gateway round trip.
// @Description A declined payment is not an HTTP error: the session comes
// @Description back in the failed state with the reason attached.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.SubmitCheckoutRequest true "Card input"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /checkout/sessions/{id}/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req reqdto.SubmitCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	_, err := h.commands.Submit(c.Request.Context(), sessionID, req.ToCardInput())
	if err != nil && !errors.Is(err, errs.ErrGatewayError) {
		h.abortWithActionError(c, err)
		return
	}
	h.respondWithSession(c, http.StatusOK, sessionID)
}

// @Summary Abandon checkout session
// @Tags checkout
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /checkout/sessions/{id} [delete]
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.commands.Abandon(sessionID); err != nil {
		h.abortWithActionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *CheckoutHandler) respondWithSession(c *gin.Context, status int, sessionID uuid.UUID) {
	view, err := h.queries.GetSession(sessionID)
	if err != nil {
		h.abortWithActionError(c, err)
		return
	}
	c.JSON(status, resdto.FromSessionView(view))
}

// abortWithActionError maps usecase and ledger errors onto the HTTP surface.
// Redemption validation failures are expected user input conditions and carry
// their message inline; the ExceedsMax ceiling travels in the detail field.
func (h *CheckoutHandler) abortWithActionError(c *gin.Context, err error) {
	var exceedsMax *ledger.ExceedsMaxError

	switch {
	case errors.Is(err, errs.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Checkout session not found", nil)
	case errors.As(err, &exceedsMax):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(),
			gin.H{"allowedMax": exceedsMax.AllowedMax})
	case errors.Is(err, ledger.ErrInvalidInput), errors.Is(err, ledger.ErrZeroPoints):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	case errors.Is(err, checkout.ErrNotEditable), errors.Is(err, checkout.ErrNotSubmitted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Checkout session does not allow this action", nil)
	case errors.Is(err, checkout.ErrTerminated), errors.Is(err, errs.ErrSessionTerminated):
		httperr.AbortWithError(c, http.StatusGone, err, "Checkout session was torn down", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
