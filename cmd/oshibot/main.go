// Command oshibot sends messages and inspects bots from the shell.
//
//	oshibot send   TOKEN GROUP_ID "message"
//	oshibot info   TOKEN
//	oshibot groups TOKEN
//	oshibot stats  TOKEN
//	oshibot list
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
