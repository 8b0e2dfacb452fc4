package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// SetupTestRouter creates a test Gin router without middleware
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// Register custom validators for testing
	_ = validator.RegisterAll()

	return gin.New()
}

// TestRequest describes one HTTP call.
// Body is JSON-encoded; Form is sent url-encoded; File is sent as multipart "file".
type TestRequest struct {
	Method  string
	URL     string
	Body    interface{}
	Form    url.Values
	File    *TestFile
	Token   string
	Cookies []*http.Cookie
}

// TestFile is a multipart upload
type TestFile struct {
	Field    string
	Name     string
	Contents string
}

// ExecuteRequest executes a test HTTP request and returns the response
func ExecuteRequest(t *testing.T, router *gin.Engine, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	contentType := "application/json"

	switch {
	case req.File != nil:
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		field := req.File.Field
		if field == "" {
			field = "file"
		}
		fw, err := mw.CreateFormFile(field, req.File.Name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := io.WriteString(fw, req.File.Contents); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("Failed to close multipart writer: %v", err)
		}
		bodyReader = buf
		contentType = mw.FormDataContentType()

	case req.Form != nil:
		bodyReader = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"

	case req.Body != nil:
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.URL, bodyReader)
	httpReq.Header.Set("Content-Type", contentType)
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for _, cookie := range req.Cookies {
		httpReq.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)

	return recorder
}

// ParseResponse parses the JSON response body into the given struct
func ParseResponse(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(recorder.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
}
