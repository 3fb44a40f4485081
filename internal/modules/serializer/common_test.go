package serializer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErr_DetailByMode(t *testing.T) {
	prev := gin.Mode()
	defer gin.SetMode(prev)

	gin.SetMode(gin.TestMode)
	res := ParamErr("", errors.New("bad column"))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "parameter error", res.Msg)
	assert.Equal(t, "bad column", res.Error)

	gin.SetMode(gin.ReleaseMode)
	res = DBErr("", errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Empty(t, res.Error)
}

func TestErrConstructors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, AuthErr("").Code)
	assert.Equal(t, http.StatusForbidden, ForbiddenErr("").Code)
	assert.Equal(t, http.StatusNotFound, NotFoundErr("experience not found", nil).Code)
	assert.Equal(t, "experience not found", NotFoundErr("experience not found", nil).Msg)
	assert.Equal(t, http.StatusBadRequest, WriteErr("", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, UnavailableErr("", nil).Code)
}
