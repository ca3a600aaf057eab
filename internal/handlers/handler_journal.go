package handlers

import (
	"errors"
	"net/http"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// JournalHandler exposes the posting engine over HTTP.
type JournalHandler struct {
	postingSvc portssvc.PostingSvcFacade
	payableSvc portssvc.DoctorPayableSvcFacade
	sessionSvc portssvc.CashSessionSvcFacade
}

func NewJournalHandler(postingSvc portssvc.PostingSvcFacade, payableSvc portssvc.DoctorPayableSvcFacade, sessionSvc portssvc.CashSessionSvcFacade) *JournalHandler {
	return &JournalHandler{postingSvc: postingSvc, payableSvc: payableSvc, sessionSvc: sessionSvc}
}

func registerJournalRoutes(rg *gin.RouterGroup, h *JournalHandler) {
	finance := rg.Group("/finance")
	finance.POST("/expenses", h.RecordExpense)
	finance.POST("/ipd-payments", h.RecordIPDPayment)
	finance.POST("/journal/:journalID/reverse", h.ReverseJournal)
	finance.GET("/journal/:journalID", h.GetJournal)
	finance.GET("/journals", h.ListJournals)
}

// currentSessionID resolves the operator's open drawer session, nil when no
// drawer is open. Cash entries posted with an open drawer are stamped so
// close-time reconciliation finds them.
func (h *JournalHandler) currentSessionID(c *gin.Context, operatorID string) (*string, error) {
	session, err := h.sessionSvc.Current(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session.SessionID, nil
}

// RecordExpense godoc
//
//	@Summary		Record an expense
//	@Description	Posts EXPENSE debit against CASH or BANK credit
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			expense	body		dto.RecordExpenseRequest	true	"Expense"
//	@Success		201		{object}	dto.JournalResponse
//	@Failure		400		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/expenses [post]
func (h *JournalHandler) RecordExpense(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID, err := h.currentSessionID(c, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.postingSvc.RecordExpense(c.Request.Context(), req, sessionID, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// RecordIPDPayment godoc
//
//	@Summary		Record an inpatient payment
//	@Description	Posts CASH or BANK debit against IPD_REVENUE credit
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		dto.RecordIPDPaymentRequest	true	"Payment"
//	@Success		201		{object}	dto.JournalResponse
//	@Failure		400		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/ipd-payments [post]
func (h *JournalHandler) RecordIPDPayment(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.RecordIPDPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID, err := h.currentSessionID(c, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.postingSvc.RecordIPDPayment(c.Request.Context(), req, sessionID, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// ReverseJournal godoc
//
//	@Summary		Reverse a journal entry
//	@Description	Posts a compensating entry with debits and credits swapped
//	@Tags			finance
//	@Accept			json
//	@Produce		json
//	@Param			journalID	path		string						true	"Journal entry ID"
//	@Param			body		body		dto.ReverseJournalRequest	false	"Optional memo"
//	@Success		200			{object}	dto.JournalResponse
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/journal/{journalID}/reverse [post]
func (h *JournalHandler) ReverseJournal(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.payableSvc.Reverse(c.Request.Context(), c.Param("journalID"), req.Memo, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// GetJournal godoc
//
//	@Summary		Get a journal entry
//	@Tags			finance
//	@Produce		json
//	@Param			journalID	path		string	true	"Journal entry ID"
//	@Success		200			{object}	dto.JournalResponse
//	@Failure		404			{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/journal/{journalID} [get]
func (h *JournalHandler) GetJournal(c *gin.Context) {
	entry, err := h.postingSvc.GetEntry(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// ListJournals godoc
//
//	@Summary		List journal entries
//	@Tags			finance
//	@Produce		json
//	@Param			limit		query		int		false	"Page size"
//	@Param			nextToken	query		string	false	"Pagination token"
//	@Success		200			{object}	dto.ListJournalsResponse
//	@Security		BearerAuth
//	@Router			/finance/journals [get]
func (h *JournalHandler) ListJournals(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.postingSvc.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
