package router_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/sales-crm/internal/auth"
	"github.com/changhyeonkim/sales-crm/internal/bootstrap"
	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/customer"
	"github.com/changhyeonkim/sales-crm/internal/router"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
	"github.com/changhyeonkim/sales-crm/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServer builds the engine exactly as cmd/server does, on an in-memory store
func setupServer(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, validator.RegisterAll())

	engine := bootstrap.NewBootstrap(cfg).SetupEngine()
	router.Setup(engine, cfg, db)
	return engine
}

func login(t *testing.T, engine *gin.Engine) string {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body:   auth.SignupRequest{LoginID: "user1", Name: "Test User", Password: "password1"},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{LoginID: "user1", Password: "password1"},
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var tokens auth.LoginResponse
	testutil.ParseResponse(t, recorder, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestServer_EndToEnd(t *testing.T) {
	// Given: A signed-in user
	engine := setupServer(t, testutil.NewTestConfig())
	accessToken := login(t, engine)

	// When: A customer is created through the API
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/customers",
		Token:  accessToken,
		Body:   customer.CustomerRequest{Name: "山田太郎", Birthday: "1990-01-01"},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	// Then: The profile counts it
	recorder = testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/users/me",
		Token:  accessToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var profile user.GetProfileResponse
	testutil.ParseResponse(t, recorder, &profile)
	assert.Equal(t, "user1", profile.LoginID)
	assert.Equal(t, int64(1), profile.CustomerCount)

	// And: The same token works as the page session cookie
	recorder = testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/customers",
		Cookies: []*http.Cookie{{Name: "crm_session", Value: accessToken}},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "山田太郎")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestServer_RefreshTokenIsNotASession(t *testing.T) {
	engine := setupServer(t, testutil.NewTestConfig())
	login(t, engine)

	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{LoginID: "user1", Password: "password1"},
	})
	var tokens auth.LoginResponse
	testutil.ParseResponse(t, recorder, &tokens)

	recorder = testutil.ExecuteRequest(t, engine, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/customers",
		Token:  tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestServer_PagesRedirectWithoutSession(t *testing.T) {
	engine := setupServer(t, testutil.NewTestConfig())

	for _, path := range []string{"/", "/customers", "/customers/export"} {
		recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: path})

		assert.Equal(t, http.StatusSeeOther, recorder.Code, path)
		assert.Equal(t, "/login", recorder.Header().Get("Location"), path)
	}
}

func TestServer_LoginRateLimited(t *testing.T) {
	// Given: One attempt per bucket
	cfg := testutil.NewTestConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	engine := setupServer(t, cfg)

	attempt := func() int {
		return testutil.ExecuteRequest(t, engine, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/v1/auth/login",
			Body:   auth.LoginRequest{LoginID: "nobody", Password: "password1"},
		}).Code
	}

	// When
	first := attempt()
	second := attempt()

	// Then
	assert.Equal(t, http.StatusBadRequest, first)
	assert.Equal(t, sharedError.TooManyRequests.Status, second)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	engine := setupServer(t, testutil.NewTestConfig())

	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: "/metrics"})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "http_request_duration_seconds")
}
