package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/systemshift/objstore-fs/internal/store"
)

func newStore() *store.ObjectStore {
	next := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	return store.New(store.WithClock(func() time.Time {
		ts := next
		next = next.Add(time.Minute)
		return ts
	}))
}

func TestRun(t *testing.T) {
	src := `
# seed
add greeting hello there
commit first commit
get greeting
remove missing
branch create dev
branch checkout dev
add extra 1
commit on dev
branch list
log
head
`
	s := newStore()
	steps, err := Run(context.Background(), s, strings.NewReader(src))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(steps) != 11 {
		t.Fatalf("steps = %d, want 11", len(steps))
	}

	tests := []struct {
		i       int
		line    int
		success bool
		message string
	}{
		{0, 3, true, "Added greeting to stage."},
		{1, 4, true, "first commit\n\t1 objects changed"},
		{2, 5, true, "Found object greeting."},
		{3, 6, false, "Object missing is not committed."},
		{4, 7, true, "Created branch dev."},
		{5, 8, true, "Switched to branch dev."},
		{8, 11, true, "* dev\n  master"},
		{10, 13, true, "on dev"},
	}
	for _, tt := range tests {
		st := steps[tt.i]
		if st.Line != tt.line {
			t.Errorf("step %d line = %d, want %d", tt.i, st.Line, tt.line)
		}
		if st.Result.Success() != tt.success || st.Result.Message() != tt.message {
			t.Errorf("step %d (%s) = %s, want success=%v %q", tt.i, st.Command, st.Result, tt.success, tt.message)
		}
	}

	if got := steps[2].Result.Payload(); got != "hello there" {
		t.Errorf("value = %v, want %q", got, "hello there")
	}
	if n := strings.Count(steps[9].Result.Message(), "Commit "); n != 2 {
		t.Errorf("log has %d entries, want 2", n)
	}
}

func TestRun_CheckoutByHash(t *testing.T) {
	s := newStore()
	s.Add("a", "1")
	c1 := s.Commit("one").Payload().(*store.Commit)
	s.Add("a", "2")
	s.Commit("two")

	steps, err := Run(context.Background(), s, strings.NewReader("checkout "+c1.Hash()+"\nget a\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := steps[1].Result.Payload(); got != "1" {
		t.Errorf("get a = %v, want 1", got)
	}
}

func TestRun_SyntaxErrors(t *testing.T) {
	tests := []string{
		"frobnicate",
		"add onlyname",
		"remove",
		"remove a b",
		"commit",
		"log extra",
		"head extra",
		"branch",
		"branch rename x",
		"branch create",
		"branch list extra",
		"get",
		"checkout",
	}
	for _, src := range tests {
		s := newStore()
		_, err := Run(context.Background(), s, strings.NewReader("add ok v\n"+src+"\n"))
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("%q: err = %v, want *SyntaxError", src, err)
			continue
		}
		if serr.Line != 2 {
			t.Errorf("%q: line = %d, want 2", src, serr.Line)
		}
	}
}

func TestRun_StopsAtSyntaxError(t *testing.T) {
	s := newStore()
	steps, err := Run(context.Background(), s, strings.NewReader("add a 1\nbogus\nadd b 2\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(steps) != 1 {
		t.Errorf("steps = %d, want 1", len(steps))
	}
	if s.Staged("b").Success() {
		t.Error("commands after the error should not run")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	steps, err := Run(ctx, newStore(), strings.NewReader("add a 1\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(steps) != 0 {
		t.Errorf("steps = %d, want 0", len(steps))
	}
}
