package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(New(KindNotFound, "gone")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", New(KindForbidden, "not yours"))
	assert.Equal(t, KindForbidden, KindOf(wrapped))
}

func TestMessage_HidesInternalCauses(t *testing.T) {
	err := Wrap(KindInternal, "query blew up", errors.New("pq: connection reset"))
	assert.Equal(t, "internal server error", Message(err))

	up := Wrap(KindUpstream, "gemini timeout", errors.New("deadline exceeded"))
	assert.Equal(t, "upstream service failure", Message(up))
}

func TestMessage_SurfacesClientKinds(t *testing.T) {
	assert.Equal(t, "form not found", Message(New(KindNotFound, "form not found")))
	assert.Equal(t, "question 3 is required", Message(Newf(KindInvalid, "question %d is required", 3)))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindInternal, "wrapped", cause)
	assert.ErrorIs(t, err, cause)
}
