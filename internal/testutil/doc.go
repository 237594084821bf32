// Package testutil holds the shared fixtures for oshibot tests: an in-process
// OSHI server that records every request, reply builders for each endpoint,
// and sleepers that make the 429 pause instant.
//
//	server := testutil.NewMockServer(t)
//	server.On(sender.PathSend, func(w http.ResponseWriter, r *http.Request) {
//	    testutil.ReplySend(w, testutil.TestGroupID, 3, 4)
//	})
//	client := testutil.NewTestClient(t, server.BaseURL())
//
//	_, err := client.Send(ctx, testutil.TestGroupID, "hi")
//	server.LastCapture().AssertJSONField(t, "groupId", testutil.TestGroupID)
//
// Only test code may import it.
package testutil
