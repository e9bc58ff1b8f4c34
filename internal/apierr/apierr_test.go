package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfTaggedErrors(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "no such slice")))
	assert.Equal(t, Unauthorized, KindOf(Newf(Unauthorized, "%s is not available", "user1")))
	assert.Equal(t, ServiceUnavailable, KindOf(New(ServiceUnavailable, "no connections")))
	assert.Equal(t, BadRequest, KindOf(New(BadRequest, "missing field")))
}

func TestUntaggedErrorsFallToInternal(t *testing.T) {
	assert.Equal(t, Internal, KindOf(errors.New("driver exploded")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := New(NotFound, "no such slice")
	outer := fmt.Errorf("assembling response: %w", inner)

	assert.Equal(t, NotFound, KindOf(outer))
}

func TestWrapPreservesCauseChain(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ServiceUnavailable, "query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ServiceUnavailable, KindOf(err))
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(Internal, "nothing", nil))
}

func TestMessageNeverLeaksInternalDetail(t *testing.T) {
	assert.Equal(t, "no such slice", Message(New(NotFound, "no such slice")))
	assert.Equal(t, "internal server error", Message(errors.New("pq: syntax error near SELECT")))
	assert.Equal(t, "internal server error", Message(Wrap(Internal, "decode failed", errors.New("boom"))))
}
