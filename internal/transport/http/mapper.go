package http

import (
	"github.com/vovakirdan/wirechat-poller/internal/core"
	"github.com/vovakirdan/wirechat-poller/internal/proto"
	"github.com/vovakirdan/wirechat-poller/internal/store"
)

func feedFromWire(wire []proto.Message) core.Feed {
	feed := make(core.Feed, len(wire))
	for i, m := range wire {
		feed[i] = core.Message{User: m.User, Text: m.Text}
	}
	return feed
}

func postFromMessage(msg core.Message) proto.PostMessage {
	return proto.PostMessage{Text: msg.Text, User: msg.User}
}

func wireFromStored(msgs []*store.Message) []proto.Message {
	wire := make([]proto.Message, 0, len(msgs))
	for _, m := range msgs {
		wire = append(wire, proto.Message{User: m.User, Text: m.Text})
	}
	return wire
}
