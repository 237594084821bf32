package sender

import (
	"context"
	"errors"

	"github.com/prilive-com/oshibot/oshi"
)

// BroadcastResult is the outcome of sending to one group during SendToAllGroups.
//
// On success Response is the server's body and Err is nil. On failure Response
// is a failure record {"success": false, "groupId": <id>, "error": <message>}
// and Err holds the classified error.
type BroadcastResult struct {
	GroupID  string
	Response oshi.Response
	Err      error
}

// OK reports whether the send to this group succeeded.
func (r BroadcastResult) OK() bool { return r.Err == nil }

// SendToAllGroups sends content to every group the bot is assigned to,
// one group at a time, in the order the server lists them.
//
// A failure to fetch the group list is returned as is. Per-group failures
// never abort the loop: they become failure records, so the result always
// has one entry per group.
func (c *Client) SendToAllGroups(ctx context.Context, content string) ([]BroadcastResult, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}

	groups := info.Map("bot").Slice("groups")
	results := make([]BroadcastResult, 0, len(groups))
	for _, g := range groups {
		id, _ := g.String("id")
		resp, err := c.Send(ctx, id, content)
		if err != nil {
			c.logger.Debug("broadcast send failed", "group_id", id, "error", err)
			results = append(results, BroadcastResult{
				GroupID: id,
				Response: oshi.Response{
					"success": false,
					"groupId": id,
					"error":   errorMessage(err),
				},
				Err: err,
			})
			continue
		}
		results = append(results, BroadcastResult{GroupID: id, Response: resp})
	}
	return results, nil
}

// Groups returns the groups the bot is assigned to, or an empty list.
func (c *Client) Groups(ctx context.Context) ([]oshi.Response, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	groups := info.Map("bot").Slice("groups")
	if groups == nil {
		groups = []oshi.Response{}
	}
	return groups, nil
}

// Stats returns the bot's message statistics, or an empty object.
func (c *Client) Stats(ctx context.Context) (oshi.Response, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	stats := info.Map("bot").Map("stats")
	if stats == nil {
		stats = oshi.Response{}
	}
	return stats, nil
}

// errorMessage returns the human-readable part of a classified error.
func errorMessage(err error) string {
	var e *oshi.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
