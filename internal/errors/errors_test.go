package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := DataSourceError("presence.csv", os.ErrNotExist)
	wrapped := Wrap(base, "refresh failed")

	assert.Equal(t, CodeDataSource, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, os.ErrNotExist))
	assert.Contains(t, wrapped.Error(), "refresh failed")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("boom"), "loading %s", "table")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "loading table: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", ConfigInvalid("DATA_CSV is required"))
	assert.True(t, IsAppError(err))
	assert.False(t, IsAppError(fmt.Errorf("plain")))
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("page")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("bad id")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ExternalServiceError("users XML", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(DataSourceError("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("plain")))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	err := InternalError("request failed", os.ErrClosed)
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.True(t, stderrors.Is(err, os.ErrClosed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}
