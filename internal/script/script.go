// Package script replays line-oriented commands against an ObjectStore.
//
// Each non-blank line that does not start with '#' is one command:
//
//	add <name> <value...>
//	remove <name>
//	commit <message...>
//	checkout <hash|cid>
//	branch create|checkout|remove <name>
//	branch list
//	get <name>
//	log
//	head
//
// The trailing argument of add and commit runs to the end of the line.
package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/systemshift/objstore-fs/internal/store"
)

// Step is the outcome of one command.
type Step struct {
	Line    int
	Command string
	Result  store.Result
}

// SyntaxError reports a malformed command.
type SyntaxError struct {
	Line    int
	Command string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Command)
}

// Run executes every command read from r against s, in order. A failed
// Result does not stop the run; a malformed line does. Steps executed before
// an error are still returned.
func Run(ctx context.Context, s *store.ObjectStore, r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		res, err := Exec(s, text)
		if err != nil {
			return steps, &SyntaxError{Line: line, Command: text, Reason: err.Error()}
		}
		steps = append(steps, Step{Line: line, Command: text, Result: res})
	}
	if err := sc.Err(); err != nil {
		return steps, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// Exec runs a single command line against s.
func Exec(s *store.ObjectStore, text string) (store.Result, error) {
	verb, rest := split(text)
	switch verb {
	case "add":
		name, value := split(rest)
		if name == "" || value == "" {
			return store.Result{}, fmt.Errorf("add needs a name and a value")
		}
		return s.Add(name, value), nil
	case "remove":
		name, err := single(verb, rest)
		if err != nil {
			return store.Result{}, err
		}
		return s.Remove(name), nil
	case "commit":
		if rest == "" {
			return store.Result{}, fmt.Errorf("commit needs a message")
		}
		return s.Commit(rest), nil
	case "checkout":
		ref, err := single(verb, rest)
		if err != nil {
			return store.Result{}, err
		}
		return s.Checkout(ref), nil
	case "get":
		name, err := single(verb, rest)
		if err != nil {
			return store.Result{}, err
		}
		return s.Get(name), nil
	case "log":
		if rest != "" {
			return store.Result{}, fmt.Errorf("log takes no arguments")
		}
		return s.Log(), nil
	case "head":
		if rest != "" {
			return store.Result{}, fmt.Errorf("head takes no arguments")
		}
		return s.Head(), nil
	case "branch":
		return execBranch(s.Branch(), rest)
	default:
		return store.Result{}, fmt.Errorf("unknown command %q", verb)
	}
}

func execBranch(m *store.BranchManager, args string) (store.Result, error) {
	sub, rest := split(args)
	if sub == "list" {
		if rest != "" {
			return store.Result{}, fmt.Errorf("branch list takes no arguments")
		}
		return m.List(), nil
	}
	var op func(string) store.Result
	switch sub {
	case "create":
		op = m.Create
	case "checkout":
		op = m.Checkout
	case "remove":
		op = m.Remove
	default:
		return store.Result{}, fmt.Errorf("unknown branch command %q", sub)
	}
	name, err := single("branch "+sub, rest)
	if err != nil {
		return store.Result{}, err
	}
	return op(name), nil
}

// split returns the first whitespace-separated field and the trimmed rest.
func split(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func single(cmd, args string) (string, error) {
	name, rest := split(args)
	if name == "" || rest != "" {
		return "", fmt.Errorf("%s takes exactly one argument", cmd)
	}
	return name, nil
}
