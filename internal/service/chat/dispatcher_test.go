package chat

import (
	"encoding/json"
	"testing"
	"time"

	"letstalk_server/internal/dto/respond"
)

// recvFrame 带超时地从连接下发队列取一帧
func recvFrame(t *testing.T, conn *UserConn) Frame {
	t.Helper()
	select {
	case raw := <-conn.SendBack:
		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		return frame
	case <-time.After(time.Second):
		t.Fatalf("no frame delivered to conn %s", conn.ConnId)
		return Frame{}
	}
}

// assertNoFrame 断言连接在短时间内没有收到任何帧
func assertNoFrame(t *testing.T, conn *UserConn) {
	t.Helper()
	select {
	case raw := <-conn.SendBack:
		t.Fatalf("conn %s unexpectedly received frame: %s", conn.ConnId, raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func startBroker(registry *PresenceRegistry) *ChannelBroker {
	broker := NewChannelBroker(registry)
	go broker.Start()
	return broker
}

func TestMessageCreatedFansOutToBothSides(t *testing.T) {
	registry := NewPresenceRegistry()
	sender := NewUserConn(nil, 1, "sender")
	receiver := NewUserConn(nil, 2, "receiver")
	_ = registry.Join(1, sender)
	_ = registry.Join(2, receiver)

	broker := startBroker(registry)
	defer broker.Close()
	dispatcher := NewDispatcher(broker)

	dispatcher.MessageCreated(respond.MessageRespond{
		Id: 100, SenderId: 1, ReceiverId: 2, Content: "hello",
	})

	for _, conn := range []*UserConn{sender, receiver} {
		frame := recvFrame(t, conn)
		if frame.Kind != EventMessage {
			t.Errorf("conn %s frame kind = %q, want %q", conn.ConnId, frame.Kind, EventMessage)
		}
		var msg respond.MessageRespond
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if msg.Id != 100 || msg.Content != "hello" {
			t.Errorf("conn %s payload = %+v", conn.ConnId, msg)
		}
	}
}

func TestMessageCreatedReachesAllDevices(t *testing.T) {
	registry := NewPresenceRegistry()
	phone := NewUserConn(nil, 2, "phone")
	laptop := NewUserConn(nil, 2, "laptop")
	_ = registry.Join(2, phone)
	_ = registry.Join(2, laptop)

	broker := startBroker(registry)
	defer broker.Close()
	dispatcher := NewDispatcher(broker)

	dispatcher.UnreadChanged(2, 3)

	for _, conn := range []*UserConn{phone, laptop} {
		frame := recvFrame(t, conn)
		if frame.Kind != EventUnread {
			t.Errorf("conn %s frame kind = %q, want %q", conn.ConnId, frame.Kind, EventUnread)
		}
		var payload UnreadPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.Unread != 3 {
			t.Errorf("conn %s unread = %d, want 3", conn.ConnId, payload.Unread)
		}
	}
}

func TestMessagesSeenOnlyTargetsOriginalSender(t *testing.T) {
	registry := NewPresenceRegistry()
	sender := NewUserConn(nil, 1, "sender")
	actor := NewUserConn(nil, 2, "actor")
	_ = registry.Join(1, sender)
	_ = registry.Join(2, actor)

	broker := startBroker(registry)
	defer broker.Close()
	dispatcher := NewDispatcher(broker)

	dispatcher.MessagesSeen(2, 1, []int64{100, 101})

	frame := recvFrame(t, sender)
	if frame.Kind != EventSeen {
		t.Errorf("frame kind = %q, want %q", frame.Kind, EventSeen)
	}
	var payload SeenPayload
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.By != 2 || payload.ForUser != 1 || len(payload.MessageIds) != 2 {
		t.Errorf("seen payload = %+v", payload)
	}

	// 执行已读操作的一方不收回执
	assertNoFrame(t, actor)
}

func TestDeliverSkipsOfflineTargets(t *testing.T) {
	registry := NewPresenceRegistry()
	online := NewUserConn(nil, 1, "online")
	_ = registry.Join(1, online)

	broker := startBroker(registry)
	defer broker.Close()
	dispatcher := NewDispatcher(broker)

	// 接收方不在线，只有发送方收到帧，且投递不报错
	dispatcher.MessageCreated(respond.MessageRespond{Id: 7, SenderId: 1, ReceiverId: 99})

	frame := recvFrame(t, online)
	if frame.Kind != EventMessage {
		t.Errorf("frame kind = %q, want %q", frame.Kind, EventMessage)
	}
}

func TestDispatcherWithoutBrokerIsNoop(t *testing.T) {
	dispatcher := NewDispatcher(nil)
	dispatcher.MessageCreated(respond.MessageRespond{Id: 1})
	dispatcher.MessagesSeen(1, 2, nil)
	dispatcher.UnreadChanged(1, 0)
}

func TestDeliverIgnoresMalformedEvent(t *testing.T) {
	registry := NewPresenceRegistry()
	deliver(registry, []byte("not json"))
}

func TestPushAfterCloseIsRejected(t *testing.T) {
	conn := NewUserConn(nil, 1, "c1")
	if !conn.Push([]byte("a")) {
		t.Errorf("push to open conn should succeed")
	}
	conn.Close()
	conn.Close()
	if conn.Push([]byte("b")) {
		t.Errorf("push to closed conn should be rejected")
	}
}
