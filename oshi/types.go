package oshi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Response is a decoded JSON object returned by the bot API, passed back to
// the caller unchanged.
type Response map[string]any

// Decode re-encodes the response into one of the typed views below.
func (r Response) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("oshibot: encode response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("oshibot: decode response: %w", err)
	}
	return nil
}

// Map returns the nested object stored under key, or nil.
func (r Response) Map(key string) Response {
	if m, ok := r[key].(map[string]any); ok {
		return Response(m)
	}
	return nil
}

// Slice returns the objects stored in the array under key.
// Array elements that are not objects are skipped.
func (r Response) Slice(key string) []Response {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Response, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Response(m))
		}
	}
	return out
}

// String returns the value under key rendered as text, and whether it was present.
// Numbers are rendered without a trailing ".0".
func (r Response) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}

// Group describes a group assignment sent with Register and UpdateGroups.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// MarshalJSON encodes a nil member list as [] rather than null.
func (g Group) MarshalJSON() ([]byte, error) {
	type plain Group
	p := plain(g)
	if p.Members == nil {
		p.Members = []string{}
	}
	return json.Marshal(p)
}

// FlexString accepts either a JSON string or a JSON number.
// The server is loose about identifiers and timestamps.
type FlexString string

// UnmarshalJSON decodes a string or number; null leaves f empty.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("oshibot: expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

// SendResult is the body returned by a successful send.
type SendResult struct {
	Success      bool       `json:"success"`
	Delivered    int        `json:"delivered"`
	TotalMembers int        `json:"totalMembers"`
	MessageID    FlexString `json:"messageId"`
	GroupName    string     `json:"groupName"`
}

// BotInfo is the body returned by the info endpoint.
type BotInfo struct {
	Success bool       `json:"success"`
	Bot     BotDetails `json:"bot"`
}

// BotDetails is the "bot" object of BotInfo.
type BotDetails struct {
	BotName      string         `json:"botName"`
	RegisteredAt FlexString     `json:"registeredAt"`
	Groups       []GroupSummary `json:"groups"`
	Stats        Stats          `json:"stats"`
}

// GroupSummary is a group as reported back by the server.
// MemberCount is nil when the server omits it.
type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount *int   `json:"memberCount,omitempty"`
}

// Stats holds per-bot message statistics.
type Stats struct {
	MessagesSent int        `json:"messagesSent"`
	LastActivity FlexString `json:"lastActivity"`
}

// BotList is the body returned by the list endpoint.
type BotList struct {
	Count int          `json:"count"`
	Bots  []BotSummary `json:"bots"`
}

// BotSummary is one entry of BotList. Groups is a count, not a list.
type BotSummary struct {
	BotName      string `json:"botName"`
	TokenPrefix  string `json:"tokenPrefix"`
	MessagesSent int    `json:"messagesSent"`
	Groups       int    `json:"groups"`
}
