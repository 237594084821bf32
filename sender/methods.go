package sender

import (
	"context"
	"net/http"

	"github.com/prilive-com/oshibot/oshi"
)

// API paths.
const (
	PathSend         = "/api/bot/send"
	PathInfo         = "/api/bot/info"
	PathRegister     = "/api/bot/register"
	PathUpdateGroups = "/api/bot/update-groups"
	PathUnregister   = "/api/bot/unregister"
	PathList         = "/api/bot/list"
)

// RegisterRequest describes a bot registration.
// A nil Groups is sent as an empty list.
type RegisterRequest struct {
	BotName        string
	OwnerPublicKey string
	Groups         []oshi.Group
}

type sendPayload struct {
	Token   string `json:"token"`
	GroupID string `json:"groupId"`
	Content string `json:"content"`
}

type registerPayload struct {
	Token          string       `json:"token"`
	BotName        string       `json:"botName"`
	OwnerPublicKey string       `json:"ownerPublicKey"`
	Groups         []oshi.Group `json:"groups"`
}

type updateGroupsPayload struct {
	Token  string       `json:"token"`
	Groups []oshi.Group `json:"groups"`
}

// Send posts content to the group identified by groupID.
// A successful body carries success, delivered, totalMembers, messageId and groupName.
func (c *Client) Send(ctx context.Context, groupID, content string) (oshi.Response, error) {
	return c.execute(ctx, http.MethodPost, PathSend, sendPayload{
		Token:   c.config.Token.Value(),
		GroupID: groupID,
		Content: content,
	}, nil)
}

// Info fetches the bot's name, registration time, groups and stats.
func (c *Client) Info(ctx context.Context) (oshi.Response, error) {
	return c.execute(ctx, http.MethodGet, PathInfo, nil, c.tokenQuery())
}

// Register registers the bot with the server.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (oshi.Response, error) {
	return c.execute(ctx, http.MethodPost, PathRegister, registerPayload{
		Token:          c.config.Token.Value(),
		BotName:        req.BotName,
		OwnerPublicKey: req.OwnerPublicKey,
		Groups:         nonNilGroups(req.Groups),
	}, nil)
}

// UpdateGroups replaces the bot's group assignments on the server.
func (c *Client) UpdateGroups(ctx context.Context, groups []oshi.Group) (oshi.Response, error) {
	return c.execute(ctx, http.MethodPost, PathUpdateGroups, updateGroupsPayload{
		Token:  c.config.Token.Value(),
		Groups: nonNilGroups(groups),
	}, nil)
}

// Unregister removes the bot from the server registry.
func (c *Client) Unregister(ctx context.Context) (oshi.Response, error) {
	return c.execute(ctx, http.MethodDelete, PathUnregister, nil, c.tokenQuery())
}

// ListBots lists every registered bot. The call is not authenticated.
func (c *Client) ListBots(ctx context.Context) (oshi.Response, error) {
	return c.execute(ctx, http.MethodGet, PathList, nil, nil)
}

func (c *Client) tokenQuery() map[string]string {
	return map[string]string{"token": c.config.Token.Value()}
}

func nonNilGroups(groups []oshi.Group) []oshi.Group {
	if groups == nil {
		return []oshi.Group{}
	}
	return groups
}
