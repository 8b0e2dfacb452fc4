package error

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDomainError_WrappedSentinel(t *testing.T) {
	// Given: A registered sentinel
	errThing := NewDomainError("TEST_THING_MISSING")
	RegisterDomainErrorResponse("TEST_THING_MISSING", ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "TEST-001",
		Message: "없음",
	})

	// When: It is wrapped several times
	err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", errThing))
	resp, ok := ResolveDomainError(err)

	// Then
	assert.True(t, ok)
	assert.Equal(t, "TEST-001", resp.Code)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestResolveDomainError_Unknown(t *testing.T) {
	_, ok := ResolveDomainError(fmt.Errorf("plain"))
	assert.False(t, ok)

	_, ok = ResolveDomainError(nil)
	assert.False(t, ok)

	_, ok = ResolveDomainError(NewDomainError("NEVER_REGISTERED"))
	assert.False(t, ok)
}

func TestResolve_FallsBackToInternal(t *testing.T) {
	assert.Equal(t, InternalServerError, Resolve(fmt.Errorf("boom")))
}
