package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/avencare/hospital_finance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	limiter "github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// AuthHandler issues JWTs for operators.
type AuthHandler struct {
	operatorSvc portssvc.OperatorSvcFacade
	cfg         *config.Config
}

func NewAuthHandler(operatorSvc portssvc.OperatorSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{operatorSvc: operatorSvc, cfg: cfg}
}

func registerAuthRoutes(rg *gin.RouterGroup, h *AuthHandler) {
	rate, err := limiter.NewRateFromFormatted("5-M")
	if err != nil {
		panic(err)
	}
	loginLimiter := limiter.New(memorystore.NewStore(), rate)

	auth := rg.Group("/auth")
	auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
}

// RegisterOperatorRoutes mounts operator administration behind auth. The
// first operator is seeded directly in the database; every later one is
// created here by an authenticated operator.
func RegisterOperatorRoutes(rg *gin.RouterGroup, h *AuthHandler) {
	rg.POST("/operators", h.RegisterOperator)
}

// Login godoc
//
//	@Summary		Operator login
//	@Description	Exchanges operator credentials for a JWT
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		dto.LoginRequest	true	"Credentials"
//	@Success		200			{object}	dto.LoginResponse
//	@Failure		401			{object}	map[string]string
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operator, err := h.operatorSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown user and wrong password answer identically.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   operator.OperatorID,
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.JWTExpiryDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:      signed,
		OperatorID: operator.OperatorID,
		FullName:   operator.FullName,
	})
}

// RegisterOperator godoc
//
//	@Summary		Register an operator
//	@Description	Creates a new active operator account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			operator	body		dto.RegisterOperatorRequest	true	"Operator"
//	@Success		201			{object}	dto.OperatorResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/operators [post]
func (h *AuthHandler) RegisterOperator(c *gin.Context) {
	if _, ok := requireOperator(c); !ok {
		return
	}
	var req dto.RegisterOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	operator, err := h.operatorSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OperatorResponse{
		OperatorID: operator.OperatorID,
		Username:   operator.Username,
		FullName:   operator.FullName,
	})
}
