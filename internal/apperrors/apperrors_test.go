package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeCodes(t *testing.T) {
	r := require.New(t)

	r.Equal(http.StatusForbidden, CodeOf(Forbidden("nope")))
	r.Equal(http.StatusNotFound, CodeOf(NotFound("gone")))
	r.Equal(http.StatusInternalServerError, CodeOf(Internal("boom")))
	r.Equal("nope", MessageOf(Forbidden("nope")))
}

func TestNonEnvelopeErrorsMapToInternal(t *testing.T) {
	r := require.New(t)

	err := errors.New("driver exploded")
	r.Equal(http.StatusInternalServerError, CodeOf(err))
	r.Equal("Unknown error", MessageOf(err))
}
