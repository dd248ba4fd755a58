package errors

import (
	"net/http"
	"strings"
)

// Messages carried in the "message" field of error responses.
const (
	MsgBadRequest       = "bad request"
	MsgUnauthorized     = "unauthorized"
	MsgForbidden        = "forbidden"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgTooManyRequests  = "too many requests"
	MsgInternalError    = "internal server error"
	MsgUnavailable      = "service unavailable"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusUnauthorized:        MsgUnauthorized,
	http.StatusForbidden:           MsgForbidden,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusTooManyRequests:     MsgTooManyRequests,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusServiceUnavailable:  MsgUnavailable,
}

// MessageFor returns the canonical message for status, falling back to the
// lower-cased status text.
func MessageFor(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return strings.ToLower(http.StatusText(status))
}
