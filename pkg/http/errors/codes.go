package errors

import "net/http"

// Default messages per status, used when a handler has nothing more specific.
const (
	MsgBadRequest       = "bad request"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgDuplicate        = "duplicate entries"
	MsgInternal         = "internal server error"
	MsgUnavailable      = "service unavailable"
)

// DefaultMessage returns the message for status, falling back to the
// lower-cased HTTP status text.
func DefaultMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusInternalServerError:
		return MsgInternal
	case http.StatusServiceUnavailable:
		return MsgUnavailable
	default:
		return http.StatusText(status)
	}
}
