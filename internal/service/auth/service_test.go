package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/santrikita/tpq-backend-go/internal/config"
	"github.com/santrikita/tpq-backend-go/internal/domain/auth"
	"github.com/santrikita/tpq-backend-go/internal/pkg/jwt"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService(t *testing.T, password string) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := config.AdminConfig{Username: "admin", PasswordHash: string(hash)}
	return NewAuthService(admin, jwt.NewJWTService(testSecret, "1h"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, "password123")

	t.Run("valid credentials issue a token", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "intruder", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{})
		assert.Error(t, err)
	})

	t.Run("token carries access claims", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "password123"})
		require.NoError(t, err)

		ja := jwt.NewJWTService(testSecret, "1h").JWTAuth()
		token, err := ja.Decode(resp.AccessToken)
		require.NoError(t, err)

		claims, err := token.AsMap(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims["username"])
		assert.Equal(t, "admin", claims["role"])
		assert.Equal(t, "access", claims["type"])
	})
}
