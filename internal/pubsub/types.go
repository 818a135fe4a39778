package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func() error
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventStatsRequested EventType = "stats-requested"
)

// StatsRequest is the payload of EventStatsRequested. It carries enough to
// build the report and answer the user who asked for it.
type StatsRequest struct {
	RequestID   string `msgpack:"request_id"`
	Name        string `msgpack:"name"`
	Tag         string `msgpack:"tag"`
	Source      string `msgpack:"source"`
	ChannelID   string `msgpack:"channel_id"`
	UserID      string `msgpack:"user_id"`
	RequestedAt int64  `msgpack:"requested_at"`
}

// PushEnvelope is the JSON body Pub/Sub push subscriptions deliver.
type PushEnvelope struct {
	Message struct {
		Data        []byte `json:"data"`
		MessageID   string `json:"message_id"`
		PublishTime string `json:"publish_time"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
