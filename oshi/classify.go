package oshi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errNotObject = errors.New("response body is not a JSON object")

// Default messages used when the server does not supply an "error" string.
const (
	MsgUnauthorized    = "Invalid bot token"
	MsgGroupAssignment = "Bot not assigned to group"
	MsgNotFound        = "Not found"
)

// Classify turns one HTTP response into a decoded body or a classified error.
//
// The body must decode to a JSON object before the status is looked at, so an
// unparseable body yields KindProtocol whatever the status. After that the
// status alone decides the kind, in the order 401, 403, 404, other >= 400; the
// server's "error" field only supplies the message.
func Classify(status int, body []byte) (Response, *Error) {
	var data Response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, NewProtocolError(status, err)
	}
	if data == nil {
		return nil, NewProtocolError(status, errNotObject)
	}

	switch {
	case status == http.StatusUnauthorized:
		return nil, NewError(KindAuth, status, data.errorMessage(MsgUnauthorized))
	case status == http.StatusForbidden:
		return nil, NewError(KindGroupAssignment, status, data.errorMessage(MsgGroupAssignment))
	case status == http.StatusNotFound:
		return nil, NewError(KindNotFound, status, data.errorMessage(MsgNotFound))
	case status == http.StatusTooManyRequests:
		return nil, NewRateLimitError(nil)
	case status >= 400:
		return nil, NewError(KindAPI, status, data.errorMessage(fmt.Sprintf("HTTP %d", status)))
	}
	return data, nil
}

// errorMessage returns the server-supplied "error" string, or fallback when
// it is missing, empty, or not a string.
func (r Response) errorMessage(fallback string) string {
	if msg, ok := r["error"].(string); ok && msg != "" {
		return msg
	}
	return fallback
}
