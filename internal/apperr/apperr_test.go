package apperr

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthenticated("no token"), fiber.StatusUnauthorized},
		{BadRequest("bad input"), fiber.StatusBadRequest},
		{Forbidden("not yours"), fiber.StatusForbidden},
		{NotFound("gone"), fiber.StatusNotFound},
		{Partial("half done"), fiber.StatusMultiStatus},
		{Internal("boom", errors.New("db down")), fiber.StatusInternalServerError},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Status(c.err), "for %v", c.err)
	}
}

func TestMessageNeverLeaksCause(t *testing.T) {
	err := Internal("Failed to delete case.", errors.New("pq: connection refused"))
	assert.Equal(t, "Failed to delete case.", Message(err))
	assert.NotContains(t, Message(err), "connection refused")

	// Error() keeps the cause for logs
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOfUnwraps(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NotFound("missing"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "An unexpected error occurred", Message(errors.New("plain")))
}
