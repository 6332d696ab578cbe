package fuse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/systemshift/objstore-fs/internal/manifest"
	"github.com/systemshift/objstore-fs/internal/store"
)

func testView(t *testing.T) *View {
	t.Helper()
	next := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	clock := func() time.Time {
		ts := next
		next = next.Add(time.Minute)
		return ts
	}
	s := store.Init(func(s *store.ObjectStore) {
		s.Add("a", "alpha")
		s.Commit("first")
		s.Add("b", 2)
		s.Commit("second")
		s.Branch().Create("dev")
		s.Add("c", true)
	}, store.WithClock(clock))
	return NewView(s)
}

func TestView_BranchList(t *testing.T) {
	v := testView(t)
	if got, want := string(v.BranchList()), "  dev\n* master\n"; got != want {
		t.Errorf("BranchList = %q, want %q", got, want)
	}
	names := v.BranchNames()
	if len(names) != 2 || names[0] != "dev" || names[1] != "master" {
		t.Errorf("BranchNames = %v", names)
	}
	if !v.HasBranch("dev") || v.HasBranch("nope") {
		t.Error("HasBranch mismatch")
	}
}

func TestView_Head(t *testing.T) {
	v := testView(t)
	var want string
	v.Do(func(s *store.ObjectStore) {
		want = s.Head().Payload().(*store.Commit).Hash() + "\n"
	})
	got, ok := v.Head("master")
	if !ok || string(got) != want {
		t.Errorf("Head = %q, %v; want %q", got, ok, want)
	}
	if _, ok := v.Head("nope"); ok {
		t.Error("Head of unknown branch should fail")
	}

	empty := NewView(store.New())
	if got, _ := empty.Head("master"); string(got) != "(none)\n" {
		t.Errorf("empty Head = %q", got)
	}
}

func TestView_Objects(t *testing.T) {
	v := testView(t)

	names, ok := v.ObjectNames("master", Committed)
	if !ok || len(names) != 2 {
		t.Fatalf("committed names = %v, %v", names, ok)
	}
	names, _ = v.ObjectNames("master", Staged)
	if len(names) != 3 || names[2] != "c" {
		t.Errorf("staged names = %v", names)
	}

	if got, ok := v.Object("master", Committed, "b"); !ok || string(got) != "2\n" {
		t.Errorf("Object b = %q, %v", got, ok)
	}
	if _, ok := v.Object("master", Committed, "c"); ok {
		t.Error("uncommitted object visible in objects/")
	}
	if got, ok := v.Object("master", Staged, "c"); !ok || string(got) != "true\n" {
		t.Errorf("staged c = %q, %v", got, ok)
	}
	if _, ok := v.Object("dev", Staged, "c"); ok {
		t.Error("master's staged edit leaked into dev")
	}
	if _, ok := v.ObjectNames("nope", Committed); ok {
		t.Error("ObjectNames of unknown branch should fail")
	}
}

func TestView_Log(t *testing.T) {
	v := testView(t)
	n, ok := v.LogLen("master")
	if !ok || n != 2 {
		t.Fatalf("LogLen = %d, %v", n, ok)
	}

	data, ok := v.LogEntry("master", 0)
	if !ok {
		t.Fatal("LogEntry 0 missing")
	}
	var e manifest.CommitEntry
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("LogEntry is not JSON: %v", err)
	}
	if e.Message != "second" || len(e.Objects) != 2 {
		t.Errorf("newest entry = %+v", e)
	}

	data, _ = v.LogEntry("master", 1)
	json.Unmarshal(data, &e)
	if e.Message != "first" {
		t.Errorf("oldest entry = %+v", e)
	}

	for _, i := range []int{-1, 2} {
		if _, ok := v.LogEntry("master", i); ok {
			t.Errorf("LogEntry(%d) should fail", i)
		}
	}
}

func TestWindow(t *testing.T) {
	data := []byte("hello")
	tests := []struct {
		size int
		off  int64
		want string
	}{
		{10, 0, "hello"},
		{2, 0, "he"},
		{2, 3, "lo"},
		{10, 4, "o"},
		{10, 5, ""},
		{10, 9, ""},
	}
	for _, tt := range tests {
		got := window(data, make([]byte, tt.size), tt.off)
		if string(got) != tt.want {
			t.Errorf("window(size=%d, off=%d) = %q, want %q", tt.size, tt.off, got, tt.want)
		}
	}
}

func TestStableIno(t *testing.T) {
	if stableIno("branches/master") != stableIno("branches/master") {
		t.Error("stableIno not deterministic")
	}
	if stableIno("branches/master") == stableIno("branches/dev") {
		t.Error("distinct paths collided")
	}
	if stableIno("") <= 1 {
		t.Error("reserved inode returned")
	}
}
