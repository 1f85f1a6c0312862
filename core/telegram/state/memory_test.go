package state

import "testing"

func TestBeginLastRegistrationWins(t *testing.T) {
	mgr := NewMemoryManager()
	mgr.Begin(10, State("await_rename"), map[string]interface{}{"group_id": int64(1)})
	mgr.Begin(10, State("await_note"), map[string]interface{}{"group_id": int64(2)})

	if got := mgr.GetState(10); got != State("await_note") {
		t.Fatalf("state = %s, want await_note", got)
	}
	gid, ok := mgr.GetTempInt64(10, "group_id")
	if !ok || gid != 2 {
		t.Fatalf("group_id = %d (%v), want 2 from the second registration", gid, ok)
	}
}

func TestBeginDoesNotLeakAcrossChats(t *testing.T) {
	mgr := NewMemoryManager()
	mgr.Begin(10, State("await_rename"), nil)

	if mgr.InProgress(11) {
		t.Fatal("continuation for chat 10 leaked into chat 11")
	}
	if !mgr.InProgress(10) {
		t.Fatal("expected pending continuation for chat 10")
	}
}

func TestEndConsumesExactlyOnce(t *testing.T) {
	mgr := NewMemoryManager()
	mgr.Begin(10, State("await_rename"), map[string]interface{}{"group_id": int64(7)})
	mgr.End(10)

	if mgr.InProgress(10) {
		t.Fatal("continuation still pending after End")
	}
	if got := mgr.GetState(10); got != StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
	if _, ok := mgr.GetTemp(10, "group_id"); ok {
		t.Fatal("resumption context survived End")
	}
}

func TestGetReturnsIdleDefault(t *testing.T) {
	mgr := NewMemoryManager()
	sess := mgr.Get(99)
	if sess.State != StateIdle {
		t.Fatalf("default session state = %s, want idle", sess.State)
	}
}
