package handlers

import (
	"errors"
	"net/http"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// CashSessionHandler exposes drawer sessions over HTTP.
type CashSessionHandler struct {
	sessionSvc portssvc.CashSessionSvcFacade
}

func NewCashSessionHandler(sessionSvc portssvc.CashSessionSvcFacade) *CashSessionHandler {
	return &CashSessionHandler{sessionSvc: sessionSvc}
}

func registerCashSessionRoutes(rg *gin.RouterGroup, h *CashSessionHandler) {
	sessions := rg.Group("/finance/cash-sessions")
	sessions.POST("/open", h.Open)
	sessions.GET("/current", h.Current)
	sessions.POST("/:sessionID/close", h.Close)
}

// Open godoc
//
//	@Summary		Open a cash session
//	@Description	Opens a drawer for the operator; returns the existing open session unchanged
//	@Tags			cash-sessions
//	@Accept			json
//	@Produce		json
//	@Param			session	body		dto.OpenCashSessionRequest	true	"Opening details"
//	@Success		200		{object}	dto.CashSessionResponse	"Existing session"
//	@Success		201		{object}	dto.CashSessionResponse	"New session"
//	@Security		BearerAuth
//	@Router			/finance/cash-sessions/open [post]
func (h *CashSessionHandler) Open(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.OpenCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, created, err := h.sessionSvc.Open(c.Request.Context(), operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToCashSessionResponse(session))
}

// Current godoc
//
//	@Summary		Current open session
//	@Description	Returns the operator's open session, or null when none is open
//	@Tags			cash-sessions
//	@Produce		json
//	@Success		200	{object}	dto.CashSessionResponse
//	@Security		BearerAuth
//	@Router			/finance/cash-sessions/current [get]
func (h *CashSessionHandler) Current(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	session, err := h.sessionSvc.Current(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session))
}

// Close godoc
//
//	@Summary		Close a cash session
//	@Description	Reconciles the drawer against the ledger and stores the snapshot
//	@Tags			cash-sessions
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string						true	"Session ID"
//	@Param			close		body		dto.CloseCashSessionRequest	true	"Counted cash"
//	@Success		200			{object}	dto.CashSessionResponse
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/cash-sessions/{sessionID}/close [post]
func (h *CashSessionHandler) Close(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.CloseCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, err := h.sessionSvc.Close(c.Request.Context(), c.Param("sessionID"), req, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session))
}
