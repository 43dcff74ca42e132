package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/park-seva/helpcenter-service/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4, // bcrypt.MinCost keeps tests fast
		OperatorUsername:      "operator",
		OperatorPassword:      "s3cret",
	}
}

func TestOperatorLogin(t *testing.T) {
	authenticator, err := NewOperatorAuthenticator(testAuthConfig())
	require.NoError(t, err)

	token, expiresAt, err := authenticator.Login("operator", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := authenticator.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "operator", claims.Subject)
}

func TestOperatorLoginRejectsBadCredentials(t *testing.T) {
	authenticator, err := NewOperatorAuthenticator(testAuthConfig())
	require.NoError(t, err)

	_, _, err = authenticator.Login("operator", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authenticator.Login("admin", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager("secret-a", 15)
	verifier := NewTokenManager("secret-b", 15)

	token, _, err := issuer.GenerateToken("operator")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)

	_, err = verifier.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestOperatorMiddleware(t *testing.T) {
	tokens := NewTokenManager("test-secret", 15)
	middleware := NewOperatorMiddleware(tokens)

	app := fiber.New()
	app.Use(middleware.Handle)
	app.Get("/protected", func(c *fiber.Ctx) error {
		username, ok := OperatorFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(username)
	})

	token, _, err := tokens.GenerateToken("operator")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "operator", string(body))

	req = httptest.NewRequest("GET", "/protected", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.StatusCode, 400)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.StatusCode, 400)
}
