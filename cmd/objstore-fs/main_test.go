package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.txt")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSeed(t *testing.T) {
	path := writeScript(t, "add a 1\ncommit one\nbranch create dev\nbranch checkout dev\n")
	s, err := seed(context.Background(), path, true)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := s.Branch().Current().Name(); got != "dev" {
		t.Errorf("current = %q, want dev", got)
	}
	if r := s.Get("a"); !r.Success() || r.Payload() != "1" {
		t.Errorf("get a = %s", r)
	}
}

func TestSeed_Errors(t *testing.T) {
	if _, err := seed(context.Background(), filepath.Join(t.TempDir(), "missing"), true); err == nil {
		t.Error("expected error for missing script")
	}
	if _, err := seed(context.Background(), writeScript(t, "nonsense\n"), true); err == nil {
		t.Error("expected error for malformed script")
	}
}
