package helper

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call is one invocation recorded by Fake.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like command line.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Response is what Fake returns for a helper.
type Response struct {
	Stdout       []string
	Stderr       []string
	Exit         int
	NotInstalled bool
}

// Fake is a thread-safe in-memory Runner for tests and development. Helpers
// without a configured response succeed with no output.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call
}

// NewFake returns a Fake with no configured responses.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// Set configures the response for every call to helper name.
func (f *Fake) Set(name string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = resp
}

// SetMissing makes helper name behave as if it were not installed.
func (f *Fake) SetMissing(name string) {
	f.Set(name, Response{NotInstalled: true})
}

// Calls returns a copy of the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Run records the call and replays the configured response.
func (f *Fake) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	f.mu.Lock()
	argv := make([]string, len(args))
	copy(argv, args)
	f.calls = append(f.calls, Call{Name: name, Args: argv})
	resp := f.responses[name]
	f.mu.Unlock()

	if resp.NotInstalled {
		return Result{Exit: -1}, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	res := Result{Stdout: resp.Stdout, Stderr: resp.Stderr, Exit: resp.Exit}
	if resp.Exit != 0 {
		return res, &ExitError{Name: name, Exit: resp.Exit, Stderr: resp.Stderr}
	}
	return res, nil
}

// Ensure Fake implements Runner
var _ Runner = (*Fake)(nil)
