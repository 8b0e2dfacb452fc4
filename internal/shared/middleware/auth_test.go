package middleware_test

import (
	"net/http"
	"testing"

	sharedContext "github.com/changhyeonkim/sales-crm/internal/shared/context"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "crm_session"

func setupAuthRouter() *gin.Engine {
	tm := testutil.NewMockTokenManager()
	whoami := func(c *gin.Context) {
		userID, _ := sharedContext.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "loginId": sharedContext.GetLoginID(c)})
	}

	router := testutil.SetupTestRouter()
	router.GET("/api/me", middleware.JWT(tm, cookieName), whoami)
	router.GET("/page", middleware.WebSession(tm, cookieName), whoami)
	return router
}

func TestJWT(t *testing.T) {
	router := setupAuthRouter()
	valid := testutil.MockAccessToken("7", "user7")

	testCases := []struct {
		name    string
		req     testutil.TestRequest
		status  int
		loginID string
	}{
		{
			name:   "no credentials",
			req:    testutil.TestRequest{},
			status: http.StatusUnauthorized,
		},
		{
			name:    "bearer token",
			req:     testutil.TestRequest{Token: valid},
			status:  http.StatusOK,
			loginID: "user7",
		},
		{
			name:    "session cookie",
			req:     testutil.TestRequest{Cookies: []*http.Cookie{{Name: cookieName, Value: valid}}},
			status:  http.StatusOK,
			loginID: "user7",
		},
		{
			name: "header wins over cookie",
			req: testutil.TestRequest{
				Token:   "bogus",
				Cookies: []*http.Cookie{{Name: cookieName, Value: valid}},
			},
			status: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Method = http.MethodGet
			tc.req.URL = "/api/me"

			recorder := testutil.ExecuteRequest(t, router, tc.req)

			require.Equal(t, tc.status, recorder.Code)
			if tc.status == http.StatusOK {
				var body map[string]any
				testutil.ParseResponse(t, recorder, &body)
				assert.Equal(t, tc.loginID, body["loginId"])
				assert.EqualValues(t, 7, body["userId"])
				return
			}
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, sharedError.Unauthenticated.Code, errorResponse.Code)
		})
	}
}

func TestWebSession_RedirectsAndDropsStaleCookie(t *testing.T) {
	router := setupAuthRouter()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/page",
		Cookies: []*http.Cookie{{Name: cookieName, Value: "expired"}},
	})

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, middleware.LoginPath, recorder.Header().Get("Location"))
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestWebSession_PassesWithCookie(t *testing.T) {
	router := setupAuthRouter()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/page",
		Cookies: []*http.Cookie{{Name: cookieName, Value: testutil.MockAccessToken("7", "user7")}},
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
}
