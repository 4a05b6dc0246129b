package execx

import (
	"context"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// Result carries the exit code of a finished subprocess along with the raw
// error os/exec reported, if any.
type Result struct {
	Code int
	Err  error
}

// RunFunc is the signature shared by RunCtx and the fakes used in tests.
// Callers that only need to launch a subprocess accept a RunFunc instead of
// depending on this package's concrete implementation.
type RunFunc func(ctx context.Context, name string, args ...string) Result

// RunCtx executes name with args, streaming the host's stdin/stdout/stderr
// into the child. The child inherits the current environment. The returned
// Result holds the child's exit code; launch failures (binary not found,
// permission denied) map to code 1.
func RunCtx(ctx context.Context, name string, args ...string) Result {
	log.WithFields(log.Fields{"cmd": name, "args": args}).Debug("executing")
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wait(cmd.Run())
}

// Capture executes name with args and returns its stdout as a string
// alongside the usual Result.
func Capture(ctx context.Context, name string, args ...string) (string, Result) {
	log.WithFields(log.Fields{"cmd": name, "args": args}).Debug("executing (capture)")
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	return string(out), wait(err)
}

func wait(err error) Result {
	if err == nil {
		return Result{}
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return Result{Code: ee.ExitCode(), Err: err}
	}
	return Result{Code: 1, Err: err}
}
