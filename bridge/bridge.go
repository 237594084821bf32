// Package bridge adapts an OSHI bot to the MoltBot framework, where it acts
// as an output transport: MoltBot hands it text and it posts that text into
// an OSHI group.
package bridge

import (
	"context"
	"fmt"

	"github.com/prilive-com/oshibot/internal/validate"
	"github.com/prilive-com/oshibot/oshi"
	"github.com/prilive-com/oshibot/sender"
)

// ErrNoTarget is returned when neither a group ID nor a default group is set.
var ErrNoTarget = oshi.NewValidationError("group_id", "No group_id specified and no default_group set")

// Output is the MoltBot output-plugin contract.
type Output interface {
	Deliver(ctx context.Context, message string) error
}

// Bridge posts MoltBot output into OSHI groups.
type Bridge struct {
	client       *sender.Client
	defaultGroup string
}

var _ Output = (*Bridge)(nil)

// New creates a Bridge for token. defaultGroup may be empty, in which case
// every Send must name its group.
func New(token, defaultGroup string, opts ...sender.Option) (*Bridge, error) {
	client, err := sender.New(token, opts...)
	if err != nil {
		return nil, err
	}
	return &Bridge{client: client, defaultGroup: defaultGroup}, nil
}

// NewWithClient wraps an existing client. The Bridge takes ownership of it.
func NewWithClient(client *sender.Client, defaultGroup string) *Bridge {
	return &Bridge{client: client, defaultGroup: defaultGroup}
}

// Send posts message to groupID, or to the default group when groupID is empty.
func (b *Bridge) Send(ctx context.Context, message, groupID string) (oshi.Response, error) {
	target := groupID
	if target == "" {
		target = b.defaultGroup
	}
	if validate.Required("group_id", target) != nil {
		return nil, ErrNoTarget
	}
	return b.client.Send(ctx, target, message)
}

// Broadcast posts message to every group the bot is assigned to.
func (b *Bridge) Broadcast(ctx context.Context, message string) ([]sender.BroadcastResult, error) {
	return b.client.SendToAllGroups(ctx, message)
}

// Info returns the bot's metadata.
func (b *Bridge) Info(ctx context.Context) (oshi.Response, error) {
	return b.client.Info(ctx)
}

// Deliver implements Output by sending to the default group.
func (b *Bridge) Deliver(ctx context.Context, message string) error {
	_, err := b.Send(ctx, message, "")
	return err
}

// Client returns the underlying client.
func (b *Bridge) Client() *sender.Client { return b.client }

// DefaultGroup returns the group used when Send is given none.
func (b *Bridge) DefaultGroup() string { return b.defaultGroup }

// Close releases the client's idle connections.
func (b *Bridge) Close() error {
	return b.client.Close()
}

func (b *Bridge) String() string {
	return fmt.Sprintf("OshiMoltBotBridge(bot=%s, default_group='%s')", b.client, b.defaultGroup)
}
