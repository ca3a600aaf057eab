package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avencare/hospital_finance_app/internal/apperrors"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// DoctorFinanceHandler exposes the doctor payable engine over HTTP.
type DoctorFinanceHandler struct {
	payableSvc portssvc.DoctorPayableSvcFacade
	sessionSvc portssvc.CashSessionSvcFacade
}

func NewDoctorFinanceHandler(payableSvc portssvc.DoctorPayableSvcFacade, sessionSvc portssvc.CashSessionSvcFacade) *DoctorFinanceHandler {
	return &DoctorFinanceHandler{payableSvc: payableSvc, sessionSvc: sessionSvc}
}

// RegisterDoctorFinanceRoutes mounts the doctor finance endpoints.
func RegisterDoctorFinanceRoutes(rg *gin.RouterGroup, h *DoctorFinanceHandler) {
	finance := rg.Group("/finance")
	finance.POST("/manual-doctor-earning", h.ManualEarning)
	finance.POST("/doctor-payout", h.Payout)
	finance.GET("/doctor/:doctorID/balance", h.Balance)
	finance.GET("/doctor/:doctorID/payouts", h.ListPayouts)
	finance.GET("/doctor/:doctorID/accruals", h.Accruals)
	finance.GET("/earnings", h.ListEarnings)
}

// ManualEarning godoc
//
//	@Summary		Accrue a doctor earning
//	@Description	Credits DOCTOR_PAYABLE against a revenue or AR debit
//	@Tags			doctor-finance
//	@Accept			json
//	@Produce		json
//	@Param			earning	body		dto.ManualEarningRequest	true	"Earning"
//	@Success		201		{object}	dto.JournalResponse
//	@Failure		400		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/manual-doctor-earning [post]
func (h *DoctorFinanceHandler) ManualEarning(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.ManualEarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.payableSvc.ManualEarning(c.Request.Context(), req, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// Payout godoc
//
//	@Summary		Pay a doctor out
//	@Description	Debits DOCTOR_PAYABLE against CASH or BANK
//	@Tags			doctor-finance
//	@Accept			json
//	@Produce		json
//	@Param			payout	body		dto.DoctorPayoutRequest	true	"Payout"
//	@Success		201		{object}	dto.JournalResponse
//	@Failure		400		{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/doctor-payout [post]
func (h *DoctorFinanceHandler) Payout(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	var req dto.DoctorPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sessionID *string
	if session, err := h.sessionSvc.Current(c.Request.Context(), operatorID); err == nil {
		sessionID = &session.SessionID
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		respondError(c, err)
		return
	}

	entry, err := h.payableSvc.Payout(c.Request.Context(), req, sessionID, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// Balance godoc
//
//	@Summary		Doctor outstanding payable
//	@Tags			doctor-finance
//	@Produce		json
//	@Param			doctorID	path		string	true	"Doctor ID"
//	@Success		200			{object}	dto.DoctorBalanceResponse
//	@Security		BearerAuth
//	@Router			/finance/doctor/{doctorID}/balance [get]
func (h *DoctorFinanceHandler) Balance(c *gin.Context) {
	doctorID := c.Param("doctorID")
	payable, err := h.payableSvc.Balance(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DoctorBalanceResponse{DoctorID: doctorID, Payable: payable})
}

// ListPayouts godoc
//
//	@Summary		Recent doctor payouts
//	@Tags			doctor-finance
//	@Produce		json
//	@Param			doctorID	path		string	true	"Doctor ID"
//	@Param			limit		query		int		false	"Max rows"
//	@Success		200			{object}	dto.ListPayoutsResponse
//	@Security		BearerAuth
//	@Router			/finance/doctor/{doctorID}/payouts [get]
func (h *DoctorFinanceHandler) ListPayouts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	payouts, err := h.payableSvc.ListPayouts(c.Request.Context(), c.Param("doctorID"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListPayoutsResponse{Payouts: payouts})
}

// Accruals godoc
//
//	@Summary		Windowed payable accruals
//	@Description	Aggregates payable movement in [from, to] and suggests a payout
//	@Tags			doctor-finance
//	@Produce		json
//	@Param			doctorID	path		string	true	"Doctor ID"
//	@Param			from		query		string	true	"Window start (yyyy-mm-dd)"
//	@Param			to			query		string	true	"Window end (yyyy-mm-dd)"
//	@Success		200			{object}	dto.DoctorAccrualsResponse
//	@Failure		400			{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/doctor/{doctorID}/accruals [get]
func (h *DoctorFinanceHandler) Accruals(c *gin.Context) {
	from, err := time.Parse(dto.DateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want yyyy-mm-dd"})
		return
	}
	to, err := time.Parse(dto.DateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want yyyy-mm-dd"})
		return
	}
	resp, err := h.payableSvc.Accruals(c.Request.Context(), c.Param("doctorID"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListEarnings godoc
//
//	@Summary		Unreversed doctor earnings
//	@Description	Earning lines excluding reversed entries, via reverse lookup
//	@Tags			doctor-finance
//	@Produce		json
//	@Param			doctorId	query		string	true	"Doctor ID"
//	@Param			from		query		string	false	"Window start (yyyy-mm-dd)"
//	@Param			to			query		string	false	"Window end (yyyy-mm-dd)"
//	@Success		200			{array}		dto.EarningResponse
//	@Failure		400			{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/finance/earnings [get]
func (h *DoctorFinanceHandler) ListEarnings(c *gin.Context) {
	var params dto.ListEarningsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.DoctorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctorId is required"})
		return
	}
	var from, to *time.Time
	if params.From != "" {
		d, err := time.Parse(dto.DateLayout, params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want yyyy-mm-dd"})
			return
		}
		from = &d
	}
	if params.To != "" {
		d, err := time.Parse(dto.DateLayout, params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want yyyy-mm-dd"})
			return
		}
		to = &d
	}
	earnings, err := h.payableSvc.ListEarnings(c.Request.Context(), params.DoctorID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}
