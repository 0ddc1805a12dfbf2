package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppErrorUnwrapsChain(t *testing.T) {
	inner := NewUnprocessableError("cart has no items")
	err := fmt.Errorf("checkout: %w", inner)

	got := GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, got.Code)
	assert.True(t, IsAppError(err))
}

func TestGetAppErrorDefaultsToInternal(t *testing.T) {
	cause := errors.New("boom")
	got := GetAppError(cause)

	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.ErrorIs(t, got, cause)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(http.StatusBadGateway, "backend unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "backend unavailable", err.Error())
}
