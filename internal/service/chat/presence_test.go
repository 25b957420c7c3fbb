package chat

import (
	"testing"

	"letstalk_server/pkg/errorx"
)

func TestJoinRejectsMismatchedIdentity(t *testing.T) {
	registry := NewPresenceRegistry()
	conn := NewUserConn(nil, 2, "c1")

	err := registry.Join(1, conn)
	if errorx.GetCode(err) != errorx.CodePermissionDenied {
		t.Errorf("join with wrong identity code = %d, want %d", errorx.GetCode(err), errorx.CodePermissionDenied)
	}
	if registry.OnlineCount(2) != 0 {
		t.Errorf("rejected conn should not be registered")
	}
}

func TestJoinRejectsNilConn(t *testing.T) {
	registry := NewPresenceRegistry()
	if err := registry.Join(1, nil); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("nil conn code = %d, want %d", errorx.GetCode(err), errorx.CodeInvalidParam)
	}
}

func TestMultiDeviceJoinAndLeave(t *testing.T) {
	registry := NewPresenceRegistry()
	phone := NewUserConn(nil, 1, "phone")
	laptop := NewUserConn(nil, 1, "laptop")

	if err := registry.Join(1, phone); err != nil {
		t.Fatalf("join phone error: %v", err)
	}
	if err := registry.Join(1, laptop); err != nil {
		t.Fatalf("join laptop error: %v", err)
	}
	if got := registry.OnlineCount(1); got != 2 {
		t.Errorf("online count = %d, want 2", got)
	}
	if got := len(registry.ConnectionsFor(1)); got != 2 {
		t.Errorf("connections = %d, want 2", got)
	}

	registry.Leave(phone)
	if got := registry.OnlineCount(1); got != 1 {
		t.Errorf("online count after leave = %d, want 1", got)
	}
	remaining := registry.ConnectionsFor(1)
	if len(remaining) != 1 || remaining[0] != laptop {
		t.Errorf("remaining connection should be laptop")
	}
}

func TestLeaveIsIdempotent(t *testing.T) {
	registry := NewPresenceRegistry()
	conn := NewUserConn(nil, 1, "c1")

	if err := registry.Join(1, conn); err != nil {
		t.Fatalf("join error: %v", err)
	}
	registry.Leave(conn)
	registry.Leave(conn)
	registry.Leave(nil)

	if registry.OnlineCount(1) != 0 {
		t.Errorf("online count = %d, want 0", registry.OnlineCount(1))
	}
}

func TestLeaveAll(t *testing.T) {
	registry := NewPresenceRegistry()
	phone := NewUserConn(nil, 1, "phone")
	laptop := NewUserConn(nil, 1, "laptop")
	other := NewUserConn(nil, 2, "other")

	_ = registry.Join(1, phone)
	_ = registry.Join(1, laptop)
	_ = registry.Join(2, other)

	removed := registry.LeaveAll(1)
	if len(removed) != 2 {
		t.Errorf("removed = %d, want 2", len(removed))
	}
	if registry.OnlineCount(1) != 0 {
		t.Errorf("user 1 should be fully offline")
	}
	if registry.OnlineCount(2) != 1 {
		t.Errorf("user 2 should be untouched")
	}

	if again := registry.LeaveAll(1); again != nil {
		t.Errorf("second LeaveAll = %v, want nil", again)
	}
}

func TestConnectionsForOfflineUser(t *testing.T) {
	registry := NewPresenceRegistry()
	if conns := registry.ConnectionsFor(42); len(conns) != 0 {
		t.Errorf("offline user connections = %d, want 0", len(conns))
	}
}
