package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("complete swap: %w", InvalidOperation("swap must be accepted before completion"))

	assert.Equal(t, KindInvalidOperation, KindOf(err))
	assert.True(t, Is(err, KindInvalidOperation))
	assert.False(t, Is(err, KindNotFound))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestStatusCodes(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:         http.StatusNotFound,
		KindInvalidOperation: http.StatusBadRequest,
		KindValidation:       http.StatusBadRequest,
		KindConflict:         http.StatusBadRequest,
		KindForbidden:        http.StatusForbidden,
		KindUnauthorized:     http.StatusUnauthorized,
		KindInternal:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.StatusCode(), kind.String())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindConflict, "user already exists", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "user already exists: duplicate key", err.Error())
}
