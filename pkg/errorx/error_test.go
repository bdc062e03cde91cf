package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(NotFound, "Not found token of %s", "revit"))
	require.True(t, errors.Is(err, Error{Code: NotFound}))
	require.False(t, errors.Is(err, Error{Code: BadRequest}))

	var errx Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, "Not found token of revit", errx.Message)
}

func TestCode_HTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, MissingCode.HTTPStatus())
	require.Equal(t, http.StatusBadRequest, Unconfigured.HTTPStatus())
	require.Equal(t, http.StatusNotFound, NotFound.HTTPStatus())
	require.Equal(t, http.StatusForbidden, PermissionDenied.HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, Unknown.Code.HTTPStatus())
}
