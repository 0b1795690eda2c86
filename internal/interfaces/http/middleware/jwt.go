package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/erp/saleproject/internal/infrastructure/auth"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth context keys and headers
const (
	JWTClaimsKey    = "jwt_claims"
	CompanyIDKey    = "company_id"
	UserIDKey       = "user_id"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
	CompanyIDHeader = "X-Company-ID"
	UserIDHeader    = "X-User-ID"
)

// ErrMissingCompany is returned when a request carries no company scope
var ErrMissingCompany = errors.New("company scope missing from request")

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are matched exactly, SkipPathPrefixes by prefix
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService:       jwtService,
		SkipPaths:        []string{"/health", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig validates the bearer token and scopes the request to the
// company carried in its claims
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) || strings.TrimPrefix(header, BearerPrefix) == "" {
			abortUnauthorized(c, log, auth.ErrInvalidToken)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			abortUnauthorized(c, log, err)
			return
		}

		companyID, _ := claims.CompanyUUID()
		userID, err := claims.UserUUID()
		if err != nil {
			abortUnauthorized(c, log, auth.ErrInvalidClaims)
			return
		}

		c.Set(JWTClaimsKey, claims)
		setScope(c, companyID, userID)
		c.Next()
	}
}

// HeaderScope scopes requests from the X-Company-ID and X-User-ID headers. It is
// installed instead of JWTAuthMiddleware when JWT is disabled.
func HeaderScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(CompanyIDHeader); raw != "" {
			companyID, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeBadRequest, "X-Company-ID must be a UUID", GetRequestID(c)))
				return
			}
			userID, _ := uuid.Parse(c.GetHeader(UserIDHeader))
			setScope(c, companyID, userID)
		}
		c.Next()
	}
}

func setScope(c *gin.Context, companyID, userID uuid.UUID) {
	c.Set(CompanyIDKey, companyID)
	c.Set(UserIDKey, userID)

	ctx := logger.WithCompanyID(c.Request.Context(), companyID.String())
	if userID != uuid.Nil {
		ctx = logger.WithUserID(ctx, userID.String())
	}
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Token is not yet valid"
	case errors.Is(err, auth.ErrMissingCompanyID), errors.Is(err, auth.ErrCompanyIDMismatch):
		code, message = dto.ErrCodeTokenInvalid, "Token carries no valid company"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingUserID):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetCompanyID returns the company the request is scoped to
func GetCompanyID(c *gin.Context) (uuid.UUID, error) {
	if v, ok := c.Get(CompanyIDKey); ok {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, ErrMissingCompany
}

// GetUserID returns the acting user, uuid.Nil when unknown
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
