package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avencare/hospital_finance_app/internal/core/domain"
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/handlers"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DoctorPayableService ---
type MockDoctorPayableService struct {
	mock.Mock
}

func (m *MockDoctorPayableService) ManualEarning(ctx context.Context, req dto.ManualEarningRequest, creatorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockDoctorPayableService) Payout(ctx context.Context, req dto.DoctorPayoutRequest, sessionID *string, creatorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, sessionID, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockDoctorPayableService) Balance(ctx context.Context, doctorID string) (decimal.Decimal, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockDoctorPayableService) Reverse(ctx context.Context, entryID, memo, creatorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, memo, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockDoctorPayableService) ListPayouts(ctx context.Context, doctorID string, limit int) ([]dto.PayoutResponse, error) {
	args := m.Called(ctx, doctorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PayoutResponse), args.Error(1)
}
func (m *MockDoctorPayableService) Accruals(ctx context.Context, doctorID string, from, to time.Time) (*dto.DoctorAccrualsResponse, error) {
	args := m.Called(ctx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorAccrualsResponse), args.Error(1)
}
func (m *MockDoctorPayableService) ListEarnings(ctx context.Context, doctorID string, from, to *time.Time) ([]dto.EarningResponse, error) {
	args := m.Called(ctx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EarningResponse), args.Error(1)
}

var _ portssvc.DoctorPayableSvcFacade = (*MockDoctorPayableService)(nil)

// --- Mock CashSessionService ---
type MockCashSessionService struct {
	mock.Mock
}

func (m *MockCashSessionService) Open(ctx context.Context, operatorID string, req dto.OpenCashSessionRequest) (*domain.CashSession, bool, error) {
	args := m.Called(ctx, operatorID, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.CashSession), args.Bool(1), args.Error(2)
}
func (m *MockCashSessionService) Current(ctx context.Context, operatorID string) (*domain.CashSession, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}
func (m *MockCashSessionService) Close(ctx context.Context, sessionID string, req dto.CloseCashSessionRequest, operatorID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID, req, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

var _ portssvc.CashSessionSvcFacade = (*MockCashSessionService)(nil)

// --- Test Suite ---
type DoctorFinanceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockPayable *MockDoctorPayableService
	mockSession *MockCashSessionService
	jwtSecret   string
}

func (suite *DoctorFinanceHandlerTestSuite) generateTestToken(operatorID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finance-test",
		Subject:   operatorID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *DoctorFinanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPayable = new(MockDoctorPayableService)
	suite.mockSession = new(MockCashSessionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterDoctorFinanceRoutes(v1, handlers.NewDoctorFinanceHandler(suite.mockPayable, suite.mockSession))
}

func (suite *DoctorFinanceHandlerTestSuite) TestListPayouts_WrapsPayload() {
	operatorID := "op-1"
	expected := []dto.PayoutResponse{
		{
			ID:      "entry-1",
			RefID:   "payout-1",
			DateISO: "2026-08-20",
			Memo:    "weekly settlement",
			Amount:  decimal.NewFromInt(300),
		},
	}

	suite.mockPayable.On("ListPayouts",
		mock.Anything, "doc-1", 20,
	).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/finance/doctor/doc-1/payouts", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(operatorID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	// The slice is wrapped under a payouts key, never a bare array.
	var raw map[string]json.RawMessage
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &raw))
	suite.Contains(raw, "payouts")

	var responseBody dto.ListPayoutsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Require().Len(responseBody.Payouts, 1)
	suite.Equal(expected[0].ID, responseBody.Payouts[0].ID)
	suite.Equal(expected[0].Memo, responseBody.Payouts[0].Memo)
	suite.True(expected[0].Amount.Equal(responseBody.Payouts[0].Amount))

	suite.mockPayable.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestDoctorFinanceHandler(t *testing.T) {
	suite.Run(t, new(DoctorFinanceHandlerTestSuite))
}
