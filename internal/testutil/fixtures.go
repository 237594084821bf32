package testutil

import "github.com/prilive-com/oshibot/oshi"

// Test constants for consistent test data.
const (
	// TestToken is a valid-format 32-character hex bot token.
	TestToken = "a1b2c3d4e5f60718293a4b5c6d7e8f90"

	// TestTokenPrefix is what display forms may reveal of TestToken.
	TestTokenPrefix = "a1b2c3d4..."

	// TestGroupID is a test group UUID.
	TestGroupID = "550e8400-e29b-41d4-a716-446655440000"

	// TestGroupID2 is a second test group UUID.
	TestGroupID2 = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	// TestGroupID3 is a third test group UUID.
	TestGroupID3 = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"

	// TestBotName is a test bot display name.
	TestBotName = "Alert Bot"

	// TestOwnerKey is a test owner public key (base64url).
	TestOwnerKey = "b3NoaS1vd25lci1wdWJsaWMta2V5"
)

// TestGroups returns group descriptors for register and update-groups.
func TestGroups() []oshi.Group {
	return []oshi.Group{
		{ID: TestGroupID, Name: "Alerts", Members: []string{"pk-alice", "pk-bob"}},
		{ID: TestGroupID2, Name: "Ops", Members: []string{"pk-carol"}},
	}
}

// GroupEntry returns a group as the info endpoint reports it.
// A negative memberCount omits the field.
func GroupEntry(id, name string, memberCount int) map[string]any {
	g := map[string]any{"id": id, "name": name}
	if memberCount >= 0 {
		g["memberCount"] = memberCount
	}
	return g
}

// InfoBody returns an info response body for TestBotName with the given groups.
func InfoBody(groups ...map[string]any) map[string]any {
	if groups == nil {
		groups = []map[string]any{}
	}
	return map[string]any{
		"success": true,
		"bot": map[string]any{
			"botName":      TestBotName,
			"registeredAt": "2024-06-01T09:00:00Z",
			"groups":       groups,
			"stats": map[string]any{
				"messagesSent": 42,
				"lastActivity": "2024-06-10T12:00:00Z",
			},
		},
	}
}

// SendBody returns a successful send response body.
func SendBody(groupID string, delivered, total int) map[string]any {
	return map[string]any{
		"success":      true,
		"delivered":    delivered,
		"totalMembers": total,
		"messageId":    "msg-" + groupID,
		"groupName":    "Group " + groupID,
	}
}

// BotEntry returns a bot as the list endpoint reports it.
func BotEntry(name, tokenPrefix string, messagesSent, groups int) map[string]any {
	return map[string]any{
		"botName":      name,
		"tokenPrefix":  tokenPrefix,
		"messagesSent": messagesSent,
		"groups":       groups,
	}
}
