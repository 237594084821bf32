// Package sender is the OSHI bot API client.
//
// # Features
//
//   - One request executor behind every call: JSON in, JSON object out
//   - Single fixed-delay retry on HTTP 429, nothing else is retried
//   - Closed error taxonomy (oshi.Kind) keyed on HTTP status
//   - Optional client-side pacing and circuit breaker, both off by default
//   - Token redaction in display forms, logs and transport errors
//
// # Usage
//
//	client, err := sender.New(token,
//	    sender.WithTimeout(10*time.Second),
//	    sender.WithRateLimit(60, 1),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.Send(ctx, groupID, "Hello, World!")
//	var e *oshi.Error
//	if errors.As(err, &e) && e.Kind == oshi.KindGroupAssignment {
//	    // assign the bot to the group first
//	}
package sender
