package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"unauthenticated", apperror.New(apperror.KindUnauthenticated, "no token"), http.StatusUnauthorized, "no token"},
		{"forbidden", apperror.New(apperror.KindForbidden, "not the form owner"), http.StatusForbidden, "not the form owner"},
		{"invalid", apperror.New(apperror.KindInvalid, "bad input"), http.StatusBadRequest, "bad input"},
		{"not found", apperror.New(apperror.KindNotFound, "form not found"), http.StatusNotFound, "form not found"},
		{"upstream hides cause", apperror.Wrap(apperror.KindUpstream, "gemini down", errors.New("dial tcp refused")), http.StatusBadGateway, "upstream service failure"},
		{"internal hides cause", apperror.Wrap(apperror.KindInternal, "query failed", errors.New("pq: boom")), http.StatusInternalServerError, "internal server error"},
		{"plain error is internal", errors.New("unclassified"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "form_id", Value: "42"}}
	id, ok := ParamID(c, "form_id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "form_id", Value: "abc"}}
	_, ok = ParamID(c, "form_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
