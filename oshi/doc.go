// Package oshi provides the types shared by the sender, bridge and CLI.
//
// This package contains:
//   - Response, the decoded JSON object returned by every bot API call
//   - Typed views (SendResult, BotInfo, Stats, BotList) decoded from a Response
//   - Group, the descriptor sent with register and update-groups
//   - The error taxonomy (Kind, Error, sentinels) and Classify
//   - SecretToken for safe token handling
//
// # Usage
//
//	import "github.com/prilive-com/oshibot/oshi"
//
//	var e *oshi.Error
//	if errors.As(err, &e) && e.Kind == oshi.KindGroupAssignment {
//	    // assign the bot to the group in the app
//	}
package oshi
