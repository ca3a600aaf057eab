package handlers

import (
	"net/http"
	"strconv"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// CorporateHandler exposes the corporate accrual engine over HTTP.
type CorporateHandler struct {
	corporateSvc portssvc.CorporateSvcFacade
}

func NewCorporateHandler(corporateSvc portssvc.CorporateSvcFacade) *CorporateHandler {
	return &CorporateHandler{corporateSvc: corporateSvc}
}

func registerCorporateRoutes(rg *gin.RouterGroup, h *CorporateHandler) {
	corp := rg.Group("/finance/corporate")
	corp.POST("/accruals", h.Accrue)
	corp.POST("/billed-items/:itemID/reaccrue", h.Reaccrue)
	corp.GET("/encounters/:encounterID/summary", h.EncounterSummary)
	corp.GET("/outbox", h.ListOutbox)
}

// Accrue godoc
//
//	@Summary		Accrue a corporate billing line
//	@Description	Prices a billed service against the company rule and records the accrual
//	@Tags			corporate
//	@Accept			json
//	@Produce		json
//	@Param			accrual	body		dto.CorporateAccrualRequest	true	"Accrual"
//	@Success		201		{object}	dto.CorporateTransactionResponse
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/corporate/accruals [post]
func (h *CorporateHandler) Accrue(c *gin.Context) {
	var req dto.CorporateAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txn, err := h.corporateSvc.Accrue(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCorporateTransactionResponse(txn))
}

// Reaccrue godoc
//
//	@Summary		Reverse and re-accrue a billed item
//	@Description	Flags active accruals reversed, inserts negated companions, accrues fresh
//	@Tags			corporate
//	@Accept			json
//	@Produce		json
//	@Param			itemID	path		string						true	"Billed item ID"
//	@Param			accrual	body		dto.CorporateAccrualRequest	true	"Updated accrual"
//	@Success		200		{object}	dto.ReaccrualResponse
//	@Failure		404		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/corporate/billed-items/{itemID}/reaccrue [post]
func (h *CorporateHandler) Reaccrue(c *gin.Context) {
	var req dto.CorporateAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.corporateSvc.ReverseAndReaccrue(c.Request.Context(), c.Param("itemID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EncounterSummary godoc
//
//	@Summary		Encounter corporate position
//	@Tags			corporate
//	@Produce		json
//	@Param			encounterID	path		string	true	"Encounter ID"
//	@Success		200			{object}	dto.EncounterCorporateSummary
//	@Security		BearerAuth
//	@Router			/finance/corporate/encounters/{encounterID}/summary [get]
func (h *CorporateHandler) EncounterSummary(c *gin.Context) {
	summary, err := h.corporateSvc.EncounterSummary(c.Request.Context(), c.Param("encounterID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListOutbox godoc
//
//	@Summary		Deferred corporate accruals
//	@Tags			corporate
//	@Produce		json
//	@Param			status	query		string	false	"pending | done | failed"	default(pending)
//	@Param			limit	query		int		false	"Max rows"
//	@Success		200		{array}		domain.CorporateOutboxEntry
//	@Security		BearerAuth
//	@Router			/finance/corporate/outbox [get]
func (h *CorporateHandler) ListOutbox(c *gin.Context) {
	status := domain.OutboxStatus(c.DefaultQuery("status", string(domain.OutboxPending)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.corporateSvc.ListOutbox(c.Request.Context(), status, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
