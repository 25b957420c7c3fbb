package message

import (
	"sort"
	"sync"
	"testing"
	"time"

	"letstalk_server/internal/dao/mysql"
	"letstalk_server/internal/dto/request"
	"letstalk_server/internal/dto/respond"
	"letstalk_server/internal/model"
	"letstalk_server/pkg/errorx"
)

// ==================== 测试用内存 Repository ====================

type fakeUserRepo struct {
	users map[int64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*model.User)}
	for _, u := range users {
		r.users[u.Id] = u
	}
	return r
}

func (r *fakeUserRepo) FindById(id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 id=%d", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindByIds(ids []int64) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 username=%s", username)
}

func (r *fakeUserRepo) FindAllExcept(excludeId int64) ([]model.User, error) {
	var result []model.User
	for _, u := range r.users {
		if u.Id != excludeId {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.Id] = user
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
}

func (r *fakeMessageRepo) Create(message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *fakeMessageRepo) FindThread(userOneId, userTwoId int64) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Message
	for _, m := range r.messages {
		if (m.SenderId == userOneId && m.ReceiverId == userTwoId) ||
			(m.SenderId == userTwoId && m.ReceiverId == userOneId) {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Uuid < result[j].Uuid
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeMessageRepo) FindRecentByUser(userId int64, limit int) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Message
	for _, m := range r.messages {
		if m.SenderId == userId || m.ReceiverId == userId {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Uuid > result[j].Uuid
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeMessageRepo) MarkSeen(receiverId, senderId int64, seenAt time.Time) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var uuids []int64
	for _, m := range r.messages {
		if m.ReceiverId == receiverId && m.SenderId == senderId && !m.SeenAt.Valid {
			m.SeenAt.Time = seenAt
			m.SeenAt.Valid = true
			uuids = append(uuids, m.Uuid)
		}
	}
	sort.Slice(uuids, func(i, j int) bool { return uuids[i] < uuids[j] })
	return uuids, nil
}

func (r *fakeMessageRepo) CountUnseen(receiverId int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.ReceiverId == receiverId && !m.SeenAt.Valid {
			count++
		}
	}
	return count, nil
}

// recordingNotifier 记录所有收到的通知，供断言使用
type recordingNotifier struct {
	created []respond.MessageRespond
	seen    []struct {
		actorId    int64
		otherId    int64
		messageIds []int64
	}
	unread []struct {
		userId int64
		count  int64
	}
}

func (n *recordingNotifier) MessageCreated(msg respond.MessageRespond) {
	n.created = append(n.created, msg)
}

func (n *recordingNotifier) MessagesSeen(actorId, otherId int64, messageIds []int64) {
	n.seen = append(n.seen, struct {
		actorId    int64
		otherId    int64
		messageIds []int64
	}{actorId, otherId, messageIds})
}

func (n *recordingNotifier) UnreadChanged(userId, count int64) {
	n.unread = append(n.unread, struct {
		userId int64
		count  int64
	}{userId, count})
}

// newTestService 组装测试用消息服务
// 不接缓存（nil），所有查询直达内存 Repository
func newTestService() (*messageService, *fakeMessageRepo, *recordingNotifier) {
	userRepo := newFakeUserRepo(
		&model.User{Id: 1, Username: "alice", DisplayName: "Alice"},
		&model.User{Id: 2, Username: "bob", DisplayName: "Bob"},
	)
	msgRepo := &fakeMessageRepo{}
	notifier := &recordingNotifier{}
	repos := &mysql.Repositories{User: userRepo, Message: msgRepo}
	return NewMessageService(repos, nil, notifier), msgRepo, notifier
}

// ==================== 测试用例 ====================

func TestSendAndListThread(t *testing.T) {
	svc, _, _ := newTestService()

	sent, err := svc.Send(1, request.SendMessageRequest{ReceiverId: 2, Content: "hello"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if sent.Status != model.StatusSent {
		t.Errorf("new message status = %q, want %q", sent.Status, model.StatusSent)
	}
	if sent.SenderName != "Alice" {
		t.Errorf("sender name = %q, want Alice", sent.SenderName)
	}
	if sent.SeenAt != nil {
		t.Errorf("new message seen_at should be nil")
	}

	list, err := svc.ListThread(2, 1)
	if err != nil {
		t.Fatalf("ListThread error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("thread length = %d, want 1", len(list))
	}
	if list[0].Id != sent.Id || list[0].Content != "hello" {
		t.Errorf("thread message mismatch: %+v", list[0])
	}
}

func TestSendToSelfRejected(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Send(1, request.SendMessageRequest{ReceiverId: 1, Content: "hi"})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("self-send code = %d, want %d", errorx.GetCode(err), errorx.CodeInvalidParam)
	}
}

func TestSendEmptyContentRejected(t *testing.T) {
	svc, _, _ := newTestService()
	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := svc.Send(1, request.SendMessageRequest{ReceiverId: 2, Content: content})
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Errorf("content %q code = %d, want %d", content, errorx.GetCode(err), errorx.CodeInvalidParam)
		}
	}
}

func TestSendUnknownReceiver(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Send(1, request.SendMessageRequest{ReceiverId: 99, Content: "hi"})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("unknown receiver code = %d, want %d", errorx.GetCode(err), errorx.CodeNotFound)
	}
}

func TestSendPublishesEvents(t *testing.T) {
	svc, _, notifier := newTestService()

	if _, err := svc.Send(1, request.SendMessageRequest{ReceiverId: 2, Content: "hello"}); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if len(notifier.created) != 1 {
		t.Fatalf("message events = %d, want 1", len(notifier.created))
	}
	if len(notifier.unread) != 1 {
		t.Fatalf("unread events = %d, want 1", len(notifier.unread))
	}
	if notifier.unread[0].userId != 2 || notifier.unread[0].count != 1 {
		t.Errorf("unread event = %+v, want user 2 count 1", notifier.unread[0])
	}
}

func TestUnreadCount(t *testing.T) {
	svc, _, _ := newTestService()

	mustSend(t, svc, 1, 2, "one")
	mustSend(t, svc, 1, 2, "two")
	mustSend(t, svc, 2, 1, "reply")

	if got := mustCount(t, svc, 2); got != 2 {
		t.Errorf("unread(2) = %d, want 2", got)
	}
	if got := mustCount(t, svc, 1); got != 1 {
		t.Errorf("unread(1) = %d, want 1", got)
	}
}

func TestMarkSeenTransitionsAndIsIdempotent(t *testing.T) {
	svc, _, notifier := newTestService()

	m1 := mustSend(t, svc, 1, 2, "one")
	m2 := mustSend(t, svc, 1, 2, "two")

	rsp, err := svc.MarkSeen(2, request.MarkSeenRequest{OtherId: 1})
	if err != nil {
		t.Fatalf("MarkSeen error: %v", err)
	}
	if rsp.Updated != 2 || rsp.Unread != 0 {
		t.Errorf("MarkSeen rsp = %+v, want Updated=2 Unread=0", rsp)
	}
	if len(rsp.MessageIds) != 2 {
		t.Fatalf("message ids = %v, want both messages", rsp.MessageIds)
	}
	gotIds := map[int64]bool{rsp.MessageIds[0]: true, rsp.MessageIds[1]: true}
	if !gotIds[m1.Id] || !gotIds[m2.Id] {
		t.Errorf("message ids = %v, want [%d %d]", rsp.MessageIds, m1.Id, m2.Id)
	}

	// 已读回执只发给原消息发送方
	if len(notifier.seen) != 1 {
		t.Fatalf("seen events = %d, want 1", len(notifier.seen))
	}
	if notifier.seen[0].actorId != 2 || notifier.seen[0].otherId != 1 {
		t.Errorf("seen event = %+v, want actor=2 other=1", notifier.seen[0])
	}

	// 消息状态已跃迁
	list, err := svc.ListThread(2, 1)
	if err != nil {
		t.Fatalf("ListThread error: %v", err)
	}
	for _, m := range list {
		if m.Status != model.StatusSeen || m.SeenAt == nil {
			t.Errorf("message %d status = %q seen_at = %v, want seen", m.Id, m.Status, m.SeenAt)
		}
	}

	// 重复执行：无跃迁、不再发回执，但依然上报未读计数
	seenEventsBefore := len(notifier.seen)
	unreadEventsBefore := len(notifier.unread)
	rsp2, err := svc.MarkSeen(2, request.MarkSeenRequest{OtherId: 1})
	if err != nil {
		t.Fatalf("second MarkSeen error: %v", err)
	}
	if rsp2.Updated != 0 || len(rsp2.MessageIds) != 0 {
		t.Errorf("second MarkSeen rsp = %+v, want no transition", rsp2)
	}
	if len(notifier.seen) != seenEventsBefore {
		t.Errorf("idempotent MarkSeen should not publish seen event")
	}
	if len(notifier.unread) != unreadEventsBefore+1 {
		t.Errorf("MarkSeen should always publish unread event")
	}
}

func TestMarkSeenUnknownOther(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.MarkSeen(1, request.MarkSeenRequest{OtherId: 42})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("unknown other code = %d, want %d", errorx.GetCode(err), errorx.CodeNotFound)
	}
}

func TestMarkSeenOnlyAffectsIncoming(t *testing.T) {
	svc, _, _ := newTestService()

	mustSend(t, svc, 1, 2, "to bob")
	mustSend(t, svc, 2, 1, "to alice")

	// Bob 标记已读，Alice 发来的消息跃迁，Bob 发出去的不受影响
	rsp, err := svc.MarkSeen(2, request.MarkSeenRequest{OtherId: 1})
	if err != nil {
		t.Fatalf("MarkSeen error: %v", err)
	}
	if rsp.Updated != 1 {
		t.Errorf("Updated = %d, want 1", rsp.Updated)
	}
	if got := mustCount(t, svc, 1); got != 1 {
		t.Errorf("unread(1) = %d, want 1 (alice still has bob's message unseen)", got)
	}
}

func TestThreadOrdering(t *testing.T) {
	svc, _, _ := newTestService()

	first := mustSend(t, svc, 1, 2, "first")
	second := mustSend(t, svc, 2, 1, "second")
	third := mustSend(t, svc, 1, 2, "third")

	list, err := svc.ListThread(1, 2)
	if err != nil {
		t.Fatalf("ListThread error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("thread length = %d, want 3", len(list))
	}
	wantOrder := []int64{first.Id, second.Id, third.Id}
	for i, want := range wantOrder {
		if list[i].Id != want {
			t.Errorf("position %d id = %d, want %d", i, list[i].Id, want)
		}
	}
}

func TestRecentMessages(t *testing.T) {
	svc, _, _ := newTestService()

	mustSend(t, svc, 1, 2, "one")
	last := mustSend(t, svc, 2, 1, "two")

	recent, err := svc.RecentMessages(1)
	if err != nil {
		t.Fatalf("RecentMessages error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent length = %d, want 2", len(recent))
	}
	if recent[0].Id != last.Id {
		t.Errorf("most recent id = %d, want %d", recent[0].Id, last.Id)
	}
	if recent[0].SenderName != "Bob" {
		t.Errorf("sender name = %q, want Bob", recent[0].SenderName)
	}
}

// ==================== 辅助函数 ====================

func mustSend(t *testing.T, svc *messageService, from, to int64, content string) *respond.MessageRespond {
	t.Helper()
	rsp, err := svc.Send(from, request.SendMessageRequest{ReceiverId: to, Content: content})
	if err != nil {
		t.Fatalf("Send(%d->%d) error: %v", from, to, err)
	}
	// 保证相邻消息 created_at 可区分
	time.Sleep(2 * time.Millisecond)
	return rsp
}

func mustCount(t *testing.T, svc *messageService, userId int64) int64 {
	t.Helper()
	rsp, err := svc.CountUnread(userId)
	if err != nil {
		t.Fatalf("CountUnread(%d) error: %v", userId, err)
	}
	return rsp.Unread
}
