package testutil

import (
	"encoding/json"
	"net/http"
)

// ReplyJSON writes v as a JSON body with the given status.
func ReplyJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ReplyOK writes a 200 response with v as the body.
func ReplyOK(w http.ResponseWriter, v any) {
	ReplyJSON(w, http.StatusOK, v)
}

// ReplyError writes an error object {"success": false, "error": message}.
func ReplyError(w http.ResponseWriter, status int, message string) {
	ReplyJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// ReplyErrorNoMessage writes {"success": false} with no "error" field, so the
// client falls back to its default message.
func ReplyErrorNoMessage(w http.ResponseWriter, status int) {
	ReplyJSON(w, status, map[string]any{"success": false})
}

// ReplyRaw writes body verbatim, for malformed-response tests.
func ReplyRaw(w http.ResponseWriter, status int, contentType, body string) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// ReplyRateLimit writes a 429 response.
func ReplyRateLimit(w http.ResponseWriter) {
	ReplyError(w, http.StatusTooManyRequests, "Rate limit exceeded")
}

// ReplySend writes a successful send body.
func ReplySend(w http.ResponseWriter, groupID string, delivered, total int) {
	ReplyOK(w, SendBody(groupID, delivered, total))
}

// ReplyInfo writes a successful info body listing groups.
func ReplyInfo(w http.ResponseWriter, groups ...map[string]any) {
	ReplyOK(w, InfoBody(groups...))
}

// ReplyBotList writes a successful list body.
func ReplyBotList(w http.ResponseWriter, bots ...map[string]any) {
	if bots == nil {
		bots = []map[string]any{}
	}
	ReplyOK(w, map[string]any{
		"count": len(bots),
		"bots":  bots,
	})
}
