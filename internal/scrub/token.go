// Package scrub removes bot tokens from error text before it reaches callers or logs.
package scrub

import (
	"net/url"
	"strings"

	"github.com/prilive-com/oshibot/oshi"
)

const redacted = "[REDACTED]"

// TokenFromError removes the bot token from error messages.
// Transport errors quote the request URL, and the info and unregister calls
// carry the token in the query string. A *url.Error is rebuilt with its URL
// redacted, so errors.As callers never see the token either. Other layers
// keep their chain for errors.Is/As via Unwrap().
func TokenFromError(err error, token oshi.SecretToken) error {
	if err == nil {
		return nil
	}
	tokenVal := token.Value()
	if tokenVal == "" {
		return err
	}

	if ue, ok := err.(*url.Error); ok {
		inner := TokenFromError(ue.Err, token)
		redactedURL := redact(ue.URL, tokenVal)
		if inner == ue.Err && redactedURL == ue.URL {
			return err
		}
		return &url.Error{Op: ue.Op, URL: redactedURL, Err: inner}
	}

	msg := err.Error()
	scrubbed := redact(msg, tokenVal)
	if scrubbed == msg {
		return err
	}
	return &scrubbedError{msg: scrubbed, err: err}
}

func redact(s, tokenVal string) string {
	s = strings.ReplaceAll(s, tokenVal, redacted)
	if escaped := url.QueryEscape(tokenVal); escaped != tokenVal {
		s = strings.ReplaceAll(s, escaped, redacted)
	}
	return s
}

// Addr returns rawURL without its query string and fragment, for use as the
// target address of a transport error.
func Addr(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }
