package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(er.New(er.InvalidArgumentCode, "x")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(er.New(er.UnauthenticatedCode, "x")))
	assert.Equal(t, http.StatusForbidden, StatusOf(er.New(er.UnauthorizedCode, "x")))
	assert.Equal(t, http.StatusNotFound, StatusOf(er.New(er.NotFoundCode, "x")))
	assert.Equal(t, http.StatusConflict, StatusOf(er.New(er.InvalidOperationCode, "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestErrorJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorJSON(rec, er.New(er.InvalidOperationCode, "artwork is not available"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "artwork is not available")
}

func TestSuccessJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessJSON(rec, map[string]int{"n": 1}, "ok")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"n":1}`, string(env.Data))
}
