package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestProcessMessage_DecodesPushedRequest(t *testing.T) {
	want := StatsRequest{
		RequestID:   "req-1",
		Name:        "Sample Name",
		Tag:         "JP1",
		Source:      "slack",
		ChannelID:   "C123",
		UserID:      "U42",
		RequestedAt: 1700000000,
	}
	payload, err := msgpack.Marshal(want)
	require.NoError(t, err)

	// Push subscriptions deliver the payload base64 encoded inside a JSON envelope.
	body, err := json.Marshal(map[string]any{"message": map[string]any{"data": payload, "message_id": "1"}})
	require.NoError(t, err)
	var envelope PushEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))

	var got StatsRequest
	c := &client{}
	require.NoError(t, c.ProcessMessage(envelope.Message.Data, &got))
	assert.Equal(t, want, got)
	assert.Equal(t, "1", envelope.Message.MessageID)
}

func TestProcessMessage_RejectsGarbage(t *testing.T) {
	var got StatsRequest
	err := (&client{}).ProcessMessage([]byte{0xc1}, &got)
	assert.Error(t, err)
}

func TestMock_RecordsAndDecodes(t *testing.T) {
	m := NewMock("test")
	req := StatsRequest{RequestID: "r", Name: "n", Tag: "t"}
	require.NoError(t, m.SendMessage(context.Background(), EventStatsRequested, req))

	require.Len(t, m.SendMessageCalls, 1)
	assert.Equal(t, EventStatsRequested, m.SendMessageCalls[0].Topic)

	data, err := msgpack.Marshal(req)
	require.NoError(t, err)
	var got StatsRequest
	require.NoError(t, m.ProcessMessage(data, &got))
	assert.Equal(t, req, got)
}
