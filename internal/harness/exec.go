package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

const (
	defaultCaptureMaxBytes = 1 << 20
	termGraceMs            = 2000
)

type limitedBuffer struct {
	max       int
	buf       bytes.Buffer
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if b.max <= 0 {
		return n, nil
	}
	remain := b.max - b.buf.Len()
	if remain > 0 {
		if remain > len(p) {
			remain = len(p)
		}
		_, _ = b.buf.Write(p[:remain])
	}
	if len(p) > remain {
		b.truncated = true
	}
	return n, nil
}

func (b *limitedBuffer) String() string { return b.buf.String() }

type execSpec struct {
	args      []string
	dir       string
	stdin     string
	timeoutMs int
}

type execResult struct {
	exitCode        int
	stdout          string
	stderr          string
	stdoutTruncated bool
	stderrTruncated bool
	timedOut        bool
	errorMsg        string
}

// runProgram executes the program under test in its case directory, feeding
// stdin wholesale and capturing both output streams through capped buffers.
// A timeout sends SIGTERM to the process group, waits a grace window, then
// SIGKILLs. Start failures are reported in errorMsg, never as a Go error.
func runProgram(ctx context.Context, spec execSpec) execResult {
	cmd := exec.Command(spec.args[0], spec.args[1:]...)
	cmd.Dir = spec.dir
	cmd.Stdin = strings.NewReader(spec.stdin)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	outBuf := &limitedBuffer{max: defaultCaptureMaxBytes}
	errBuf := &limitedBuffer{max: defaultCaptureMaxBytes}
	cmd.Stdout = outBuf
	cmd.Stderr = errBuf

	if err := cmd.Start(); err != nil {
		var ee *exec.Error
		if errors.As(err, &ee) {
			return execResult{exitCode: -1, errorMsg: fmt.Sprintf("program %s not found", spec.args[0])}
		}
		return execResult{exitCode: -1, errorMsg: fmt.Sprintf("program %s start failed", spec.args[0])}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var timeoutC <-chan time.Time
	if spec.timeoutMs > 0 {
		timer := time.NewTimer(time.Duration(spec.timeoutMs) * time.Millisecond)
		defer timer.Stop()
		timeoutC = timer.C
	}

	var runErr error
	timedOut := false
	select {
	case runErr = <-done:
	case <-ctx.Done():
		timedOut = true
		runErr = terminate(cmd, done)
	case <-timeoutC:
		timedOut = true
		runErr = terminate(cmd, done)
	}

	res := execResult{
		stdout:          outBuf.String(),
		stderr:          errBuf.String(),
		stdoutTruncated: outBuf.truncated,
		stderrTruncated: errBuf.truncated,
		timedOut:        timedOut,
	}
	if timedOut {
		res.exitCode = -2
		return res
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.exitCode = exitErr.ExitCode()
			return res
		}
		res.exitCode = -1
		res.errorMsg = fmt.Sprintf("program %s execution failed", spec.args[0])
		return res
	}
	return res
}

// terminate signals the process group and waits out the grace window.
func terminate(cmd *exec.Cmd, done <-chan error) error {
	signalProcess(cmd, syscall.SIGTERM)
	grace := time.NewTimer(termGraceMs * time.Millisecond)
	defer grace.Stop()
	select {
	case err := <-done:
		return err
	case <-grace.C:
		signalProcess(cmd, syscall.SIGKILL)
		return <-done
	}
}

func signalProcess(cmd *exec.Cmd, sig syscall.Signal) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	if pid > 0 {
		if err := syscall.Kill(-pid, sig); err == nil {
			return
		}
	}
	_ = cmd.Process.Signal(sig)
}

var _ io.Writer = (*limitedBuffer)(nil)
