package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondStatus_UsesCanonicalMessages(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          "bad request",
		http.StatusNotFound:            "resource not found",
		http.StatusMethodNotAllowed:    "method not allowed",
		http.StatusUnprocessableEntity: "unprocessable",
		http.StatusInternalServerError: "internal server error",
	}
	for status, msg := range cases {
		rec := httptest.NewRecorder()
		RespondStatus(rec, status)

		assert.Equal(t, status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		body := decode(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, status, body.Error)
		assert.Equal(t, msg, body.Message)
	}
}

func TestRespondUnprocessable_Detail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondUnprocessable(rec, "answer is required")
	assert.Equal(t, "answer is required", decode(t, rec).Message)

	rec = httptest.NewRecorder()
	RespondUnprocessable(rec, "")
	assert.Equal(t, MsgUnprocessable, decode(t, rec).Message)
}

func TestMessageFor_Fallback(t *testing.T) {
	assert.Equal(t, "i'm a teapot", MessageFor(http.StatusTeapot))
	assert.Equal(t, "gateway timeout", MessageFor(http.StatusGatewayTimeout))
}
