package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/prilive-com/oshibot/oshi"
	"github.com/prilive-com/oshibot/sender"
)

// listToken stands in for a token on the list command, which sends none.
const listToken = "unauthenticated"

type cli struct {
	app *kingpin.Application

	BaseURL  *string
	Timeout  *time.Duration
	NoRetry  *bool
	LogLevel *string

	Send        *kingpin.CmdClause
	SendToken   *string
	SendGroup   *string
	SendMessage *string

	Info        *kingpin.CmdClause
	InfoToken   *string
	Groups      *kingpin.CmdClause
	GroupsToken *string
	Stats       *kingpin.CmdClause
	StatsToken  *string
	List        *kingpin.CmdClause

	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
	exit   *int
}

func newCLI(ctx context.Context, stdout, stderr io.Writer) *cli {
	app := kingpin.New("oshibot", "OSHI Bot SDK command line interface")
	app.HelpFlag.Short('h')
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	c := &cli{
		app:      app,
		BaseURL:  app.Flag("base-url", "OSHI server URL").Default(sender.DefaultBaseURL).String(),
		Timeout:  app.Flag("timeout", "Per-request timeout").Default("10s").Duration(),
		NoRetry:  app.Flag("no-retry", "Do not retry once after HTTP 429").Bool(),
		LogLevel: app.Flag("log-level", "Log level written to stderr").Default("warn").Enum("debug", "info", "warn", "error"),
		Send:     app.Command("send", "Send a message to a group"),
		Info:     app.Command("info", "Print bot info as JSON"),
		Groups:   app.Command("groups", "List the bot's groups"),
		Stats:    app.Command("stats", "Print the bot's message statistics"),
		List:     app.Command("list", "List all registered bots"),
		ctx:      ctx,
		stdout:   stdout,
		stderr:   stderr,
	}

	c.SendToken = c.Send.Arg("token", "Bot token").Required().String()
	c.SendGroup = c.Send.Arg("group-id", "Target group ID").Required().String()
	c.SendMessage = c.Send.Arg("message", "Message text").Required().String()
	c.InfoToken = c.Info.Arg("token", "Bot token").Required().String()
	c.GroupsToken = c.Groups.Arg("token", "Bot token").Required().String()
	c.StatsToken = c.Stats.Arg("token", "Bot token").Required().String()

	c.Send.Action(c.send)
	c.Info.Action(c.info)
	c.Groups.Action(c.groups)
	c.Stats.Action(c.stats)
	c.List.Action(c.list)

	// --help and the help command end the run with status 0.
	app.Terminate(func(code int) {
		if c.exit == nil {
			c.exit = &code
		}
	})

	return c
}

// run parses args, executes one command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCLI(ctx, stdout, stderr)

	if len(args) == 0 {
		c.app.Usage(nil)
		return 0
	}

	_, err := c.app.Parse(args)
	if c.exit != nil {
		return *c.exit
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", errorMessage(err))
		return 1
	}
	return 0
}

func (c *cli) client(token string) (*sender.Client, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*c.LogLevel)); err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))

	return sender.New(token,
		sender.WithBaseURL(*c.BaseURL),
		sender.WithTimeout(*c.Timeout),
		sender.WithAutoRetry(!*c.NoRetry),
		sender.WithLogger(logger),
	)
}

func (c *cli) send(*kingpin.ParseContext) error {
	client, err := c.client(*c.SendToken)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.Send(c.ctx, *c.SendGroup, *c.SendMessage)
	if err != nil {
		return err
	}
	return c.printJSON(resp)
}

func (c *cli) info(*kingpin.ParseContext) error {
	client, err := c.client(*c.InfoToken)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.Info(c.ctx)
	if err != nil {
		return err
	}
	return c.printJSON(resp)
}

func (c *cli) groups(*kingpin.ParseContext) error {
	client, err := c.client(*c.GroupsToken)
	if err != nil {
		return err
	}
	defer client.Close()

	groups, err := client.Groups(c.ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		name, _ := g.String("name")
		id, _ := g.String("id")
		members, ok := g.String("memberCount")
		if !ok {
			members = "?"
		}
		fmt.Fprintf(c.stdout, "  %s (id: %s, members: %s)\n", name, id, members)
	}
	return nil
}

func (c *cli) stats(*kingpin.ParseContext) error {
	client, err := c.client(*c.StatsToken)
	if err != nil {
		return err
	}
	defer client.Close()

	stats, err := client.Stats(c.ctx)
	if err != nil {
		return err
	}
	sent, ok := stats.String("messagesSent")
	if !ok {
		sent = "0"
	}
	last, ok := stats.String("lastActivity")
	if !ok {
		last = "never"
	}
	fmt.Fprintf(c.stdout, "  Messages sent: %s\n", sent)
	fmt.Fprintf(c.stdout, "  Last activity: %s\n", last)
	return nil
}

func (c *cli) list(*kingpin.ParseContext) error {
	client, err := c.client(listToken)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.ListBots(c.ctx)
	if err != nil {
		return err
	}
	for _, b := range resp.Slice("bots") {
		name, _ := b.String("botName")
		prefix, _ := b.String("tokenPrefix")
		sent, _ := b.String("messagesSent")
		groups, _ := b.String("groups")
		fmt.Fprintf(c.stdout, "  %s (%s) - %s msgs, %s groups\n", name, prefix, sent, groups)
	}
	return nil
}

func (c *cli) printJSON(resp oshi.Response) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, string(data))
	return nil
}

// errorMessage prefers the classified message over the full error chain.
func errorMessage(err error) string {
	var e *oshi.Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ve *oshi.ValidationError
	if errors.As(err, &ve) {
		return ve.Field + ": " + ve.Message
	}
	return err.Error()
}
