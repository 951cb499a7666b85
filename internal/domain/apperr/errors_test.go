package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UnwrapsToKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		code string
	}{
		{"validation", Validation("amount %s", "-1"), ErrValidation, CodeValidation},
		{"authority", InsufficientAuthority("x"), ErrInsufficientAuthority, CodeInsufficientAuthority},
		{"at top", AlreadyAtTop(), ErrAlreadyAtTop, CodeAlreadyAtTop},
		{"conflict", ConcurrentModification("application", "abc"), ErrConcurrentModification, CodeConcurrentModification},
		{"duration", InvalidDuration(0), ErrInvalidDuration, CodeInvalidDuration},
		{"not found", NotFound("member", "m1"), ErrNotFound, CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("usecase: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.code, CodeOf(wrapped))
		})
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: member m1 not found", NotFound("member", "m1").Error())
	assert.Equal(t, "X: not found", (&Error{Code: "X", Err: ErrNotFound}).Error())
}
