package auth

import (
	"testing"
	"time"

	"github.com/erp/saleproject/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Enabled:               true,
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "saleproject-test",
		AccessTokenExpiration: 15 * time.Minute,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	input := TokenInput{CompanyID: uuid.New(), UserID: uuid.New(), Username: "alice"}

	token, expiresAt, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	companyID, err := claims.CompanyUUID()
	require.NoError(t, err)
	assert.Equal(t, input.CompanyID, companyID)
	userID, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "saleproject-test", claims.Issuer)
}

func TestJWTService_ValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	input := TokenInput{CompanyID: uuid.New(), UserID: uuid.New()}

	t.Run("expired", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(input)
		require.NoError(t, err)

		later := *svc
		later.now = func() time.Time { return time.Now().Add(time.Hour) }

		_, err = later.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret", Issuer: "saleproject-test", AccessTokenExpiration: time.Minute})
		token, _, err := other.GenerateAccessToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else", AccessTokenExpiration: time.Minute})
		token, _, err := other.GenerateAccessToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{CompanyID: input.CompanyID.String(), UserID: input.UserID.String()}
		claims.Issuer = "saleproject-test"
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing company", func(t *testing.T) {
		claims := &Claims{UserID: input.UserID.String()}
		claims.Issuer = "saleproject-test"
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrMissingCompanyID)
	})

	t.Run("company is not a uuid", func(t *testing.T) {
		claims := &Claims{CompanyID: "acme", UserID: input.UserID.String()}
		claims.Issuer = "saleproject-test"
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrCompanyIDMismatch)
	})
}

func TestJWTService_GenerateAccessToken_NoSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{AccessTokenExpiration: time.Minute})

	_, _, err := svc.GenerateAccessToken(TokenInput{CompanyID: uuid.New(), UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrMissingSecret)
}
