package handlers_test

import (
	"bytes"
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
	"github.com/avencare/hospital_finance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OperatorService ---
type MockOperatorService struct {
	mock.Mock
}

func (m *MockOperatorService) Authenticate(ctx context.Context, username, password string) (*domain.Operator, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
func (m *MockOperatorService) Register(ctx context.Context, req dto.RegisterOperatorRequest) (*domain.Operator, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

var _ portssvc.OperatorSvcFacade = (*MockOperatorService)(nil)

// --- Test Suite ---
type OperatorHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockOperator *MockOperatorService
	jwtSecret    string
}

func (suite *OperatorHandlerTestSuite) generateTestToken(operatorID string) string {
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

func (suite *OperatorHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockOperator = new(MockOperatorService)
	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTIssuer:         "finance-test",
		JWTExpiryDuration: time.Hour,
	}

	protected := suite.router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterOperatorRoutes(protected, handlers.NewAuthHandler(suite.mockOperator, cfg))
}

func (suite *OperatorHandlerTestSuite) TestRegisterOperator_Created() {
	created := &domain.Operator{
		OperatorID: "op-2",
		Username:   "reception2",
		FullName:   "Second Receptionist",
		IsActive:   true,
	}

	suite.mockOperator.On("Register",
		mock.Anything,
		mock.MatchedBy(func(req dto.RegisterOperatorRequest) bool {
			return req.Username == "reception2" && req.FullName == "Second Receptionist"
		}),
	).Return(created, nil).Once()

	body, _ := json.Marshal(dto.RegisterOperatorRequest{
		Username: "reception2",
		Password: "s3cret-enough",
		FullName: "Second Receptionist",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/operators", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("op-1"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.OperatorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(created.OperatorID, responseBody.OperatorID)
	suite.Equal(created.Username, responseBody.Username)

	suite.mockOperator.AssertExpectations(suite.T())
}

func (suite *OperatorHandlerTestSuite) TestRegisterOperator_RequiresAuth() {
	body, _ := json.Marshal(dto.RegisterOperatorRequest{
		Username: "reception2",
		Password: "s3cret-enough",
		FullName: "Second Receptionist",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/operators", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOperator.AssertNotCalled(suite.T(), "Register")
}

// --- Run Test Suite ---
func TestOperatorHandler(t *testing.T) {
	suite.Run(t, new(OperatorHandlerTestSuite))
}
