// Package helper runs the external command-line tools deskprofile relies on
// (displayplacer, SwitchAudioSource, nircmd, PowerShell, osascript) and
// returns their line-oriented output.
package helper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gocmd "github.com/go-cmd/cmd"
	"golang.org/x/time/rate"
)

// ErrNotInstalled is returned when a helper binary cannot be started.
var ErrNotInstalled = errors.New("helper not installed")

// Result is the captured output of a finished helper process.
type Result struct {
	Stdout []string
	Stderr []string
	Exit   int
}

// ExitError reports a helper that ran but exited with a non-zero status.
type ExitError struct {
	Name   string
	Exit   int
	Stderr []string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(strings.Join(e.Stderr, "\n"))
	if msg == "" {
		return fmt.Sprintf("%s exited with status %d", e.Name, e.Exit)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.Exit, msg)
}

// Runner starts a helper and waits for it. Implementations return
// ErrNotInstalled (wrapped) when the binary cannot be spawned and
// *ExitError when it exits non-zero; the Result is valid in the latter case.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs real processes. Spawns are rate limited.
type ExecRunner struct {
	limiter *rate.Limiter
}

// NewExecRunner returns a runner allowing perSec spawns per second with the
// given burst.
func NewExecRunner(perSec float64, burst int) *ExecRunner {
	if burst < 1 {
		burst = 1
	}
	return &ExecRunner{
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// Run starts name with args and blocks until it exits or ctx is done.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("%s: rate limit: %w", name, err)
	}

	slog.Debug("helper: run", "name", name, "args", args)
	c := gocmd.NewCmd(name, args...)
	statusCh := c.Start()

	var st gocmd.Status
	select {
	case st = <-statusCh:
	case <-ctx.Done():
		_ = c.Stop()
		<-statusCh
		return Result{}, fmt.Errorf("%s: %w", name, ctx.Err())
	}

	res := Result{
		Stdout: st.Stdout,
		Stderr: st.Stderr,
		Exit:   st.Exit,
	}
	if st.Error != nil {
		// go-cmd reports spawn failures through Error with Exit -1.
		if !st.Complete && st.PID == 0 {
			return res, fmt.Errorf("%s: %w: %v", name, ErrNotInstalled, st.Error)
		}
		return res, fmt.Errorf("%s: %w", name, st.Error)
	}
	if st.Exit != 0 {
		return res, &ExitError{Name: name, Exit: st.Exit, Stderr: st.Stderr}
	}
	return res, nil
}

// Ensure ExecRunner implements Runner
var _ Runner = (*ExecRunner)(nil)

// NonBlank returns the trimmed, non-empty lines of lines.
func NonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
