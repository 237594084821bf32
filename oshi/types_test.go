package oshi_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/oshibot/oshi"
)

func decodeResponse(t *testing.T, body string) oshi.Response {
	t.Helper()
	resp, err := oshi.Classify(200, []byte(body))
	require.Nil(t, err)
	return resp
}

func TestResponse_DecodeBotInfo(t *testing.T) {
	resp := decodeResponse(t, `{
		"success": true,
		"bot": {
			"botName": "Alert Bot",
			"registeredAt": 1718000000000,
			"groups": [
				{"id": "g-1", "name": "Alerts", "memberCount": 12},
				{"id": "g-2", "name": "Ops"}
			],
			"stats": {"messagesSent": 42, "lastActivity": "2024-06-10T12:00:00Z"}
		}
	}`)

	var info oshi.BotInfo
	require.NoError(t, resp.Decode(&info))

	assert.True(t, info.Success)
	assert.Equal(t, "Alert Bot", info.Bot.BotName)
	assert.Equal(t, oshi.FlexString("1718000000000"), info.Bot.RegisteredAt)
	require.Len(t, info.Bot.Groups, 2)
	require.NotNil(t, info.Bot.Groups[0].MemberCount)
	assert.Equal(t, 12, *info.Bot.Groups[0].MemberCount)
	assert.Nil(t, info.Bot.Groups[1].MemberCount)
	assert.Equal(t, 42, info.Bot.Stats.MessagesSent)
	assert.Equal(t, oshi.FlexString("2024-06-10T12:00:00Z"), info.Bot.Stats.LastActivity)
}

func TestResponse_DecodeSendResult(t *testing.T) {
	resp := decodeResponse(t, `{"success":true,"delivered":3,"totalMembers":4,"messageId":981,"groupName":"Alerts"}`)

	var result oshi.SendResult
	require.NoError(t, resp.Decode(&result))
	assert.Equal(t, 3, result.Delivered)
	assert.Equal(t, 4, result.TotalMembers)
	assert.Equal(t, oshi.FlexString("981"), result.MessageID)
}

func TestResponse_DecodeBotList(t *testing.T) {
	resp := decodeResponse(t, `{"count":1,"bots":[{"botName":"B","tokenPrefix":"a1b2c3d4","messagesSent":7,"groups":2}]}`)

	var list oshi.BotList
	require.NoError(t, resp.Decode(&list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, oshi.BotSummary{BotName: "B", TokenPrefix: "a1b2c3d4", MessagesSent: 7, Groups: 2}, list.Bots[0])
}

func TestResponse_DecodeTypeMismatch(t *testing.T) {
	resp := decodeResponse(t, `{"messageId":{"nested":true}}`)
	var result oshi.SendResult
	assert.Error(t, resp.Decode(&result))
}

func TestResponse_MapAndSlice(t *testing.T) {
	resp := decodeResponse(t, `{"bot":{"groups":[{"id":"a"},"junk",{"id":"b"}]}}`)

	groups := resp.Map("bot").Slice("groups")
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0]["id"])
	assert.Equal(t, "b", groups[1]["id"])

	assert.Nil(t, resp.Map("missing"))
	assert.Empty(t, resp.Map("missing").Slice("groups"))
}

func TestResponse_String(t *testing.T) {
	resp := decodeResponse(t, `{"n":12,"f":1.5,"s":"x","b":true,"z":null}`)

	v, ok := resp.String("n")
	assert.True(t, ok)
	assert.Equal(t, "12", v)

	v, _ = resp.String("f")
	assert.Equal(t, "1.5", v)

	v, _ = resp.String("b")
	assert.Equal(t, "true", v)

	_, ok = resp.String("z")
	assert.False(t, ok)
	_, ok = resp.String("missing")
	assert.False(t, ok)
}

func TestGroup_MarshalNilMembers(t *testing.T) {
	data, err := json.Marshal(oshi.Group{ID: "g-1", Name: "Alerts"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g-1","name":"Alerts","members":[]}`, string(data))

	data, err = json.Marshal([]oshi.Group{{ID: "g-2", Name: "Ops", Members: []string{"pk1"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"g-2","name":"Ops","members":["pk1"]}]`, string(data))
}
