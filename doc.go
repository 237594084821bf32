// Package oshibot is a Go client for the OSHI Messenger Bot API.
//
// A bot is identified by a 32-character hex token. Every call is a single
// stateless HTTPS round trip; the client keeps no bot state between calls.
//
// # Quick Start
//
//	bot, err := oshibot.New(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bot.Close()
//
//	resp, err := bot.Send(ctx, groupID, "Deploy finished")
//
// # Errors
//
// Failed calls return an *oshi.Error. Switch on its Kind, or match a
// sentinel with errors.Is:
//
//	var e *oshibot.Error
//	if errors.As(err, &e) && e.Kind == oshi.KindGroupAssignment {
//	    // add the bot to the group first
//	}
//
//	if errors.Is(err, oshi.ErrRateLimited) { ... }
//
// # Rate limiting
//
// The server allows 60 messages per minute per bot. A 429 is retried once
// after five seconds unless WithAutoRetry(false) is given. WithRateLimit
// paces requests on the client side so the server limit is never hit.
//
// # Packages
//
//   - sender: the request executor and every API operation
//   - oshi: shared types and the error taxonomy
//   - bridge: MoltBot output-transport adapter
package oshibot
