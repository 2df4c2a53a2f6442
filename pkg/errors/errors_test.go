package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrUnsupportedModel.HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidParam.HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, ErrTooManyRequests.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrGenerationFailed.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrLLMCallFailed.HTTPStatus)
}

func TestWithErrorDoesNotMutatePredefined(t *testing.T) {
	wrapped := ErrLLMCallFailed.WithError(fmt.Errorf("timeout"))

	assert.Nil(t, ErrLLMCallFailed.Err)
	assert.EqualError(t, wrapped, "[4005] LLM call failed: timeout")
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", ErrUnsupportedModel.WithDetail("claude-3"))

	assert.True(t, IsAppError(err))
	assert.True(t, HasCode(err, CodeUnsupportedModel))
	assert.Equal(t, "claude-3", AsAppError(err).Detail)
}

func TestAsAppErrorFallsBackToUnknown(t *testing.T) {
	appErr := AsAppError(fmt.Errorf("plain"))

	assert.Equal(t, CodeUnknown, appErr.Code)
	assert.False(t, HasCode(fmt.Errorf("plain"), CodeUnknown))
}
