package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) ResetToken(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}
func (f *fakeExec) UpdatePassword(ctx context.Context) error {
	f.calls = append(f.calls, "setpw")
	return nil
}

func runWith(t *testing.T, f *fakeExec, lines ...string) []string {
	t.Helper()

	origPrint := printlnFn
	var printed []string
	printlnFn = func(args ...any) (int, error) {
		s := ""
		for _, a := range args {
			if s != "" {
				s += " "
			}
			if str, ok := a.(string); ok {
				s += str
			}
		}
		printed = append(printed, s)
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	scanner := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), f, func() string { return "" }, scanner)
	return printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	f := &fakeExec{}
	runWith(t, f, "register", "login", "profile", "logout", "reset", "setpw", "exit")

	want := []string{"register", "login", "profile", "logout", "reset", "setpw"}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", f.calls, want)
		}
	}
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	printed := runWith(t, &fakeExec{}, "help", "login", "help", "quit")

	var sawAnon, sawAuthed bool
	for _, line := range printed {
		if strings.Contains(line, "register, login") {
			sawAnon = true
		}
		if strings.Contains(line, "profile, logout") {
			sawAuthed = true
		}
	}
	if !sawAnon || !sawAuthed {
		t.Fatalf("help output missing a state: anon=%v authed=%v\n%v", sawAnon, sawAuthed, printed)
	}
}

func TestRunREPL_UnknownAndBlank(t *testing.T) {
	f := &fakeExec{}
	printed := runWith(t, f, "", "   ", "bogus", "exit")

	if len(f.calls) != 0 {
		t.Fatalf("unexpected calls: %v", f.calls)
	}
	var sawUnknown bool
	for _, line := range printed {
		if strings.Contains(line, "Unknown command") {
			sawUnknown = true
		}
	}
	if !sawUnknown {
		t.Fatalf("expected unknown-command message, got %v", printed)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	scanner := bufio.NewScanner(strings.NewReader(""))
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, scanner)
}
