package recorder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Capture holds everything observed during a recorded run.
type Capture struct {
	ReturnCode int
	Stdin      []string
	Stdout     string
	Stderr     string
}

// runInteractive runs the program from dir, teeing lines from in to its stdin
// while remembering them, and capturing both output streams. The program's
// exit status is part of the capture, not an error.
func runInteractive(ctx context.Context, dir string, args []string, in io.Reader) (*Capture, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Start(); err != nil {
		var ee *exec.Error
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("program %s not found", args[0])
		}
		return nil, fmt.Errorf("program %s start failed", args[0])
	}

	var mu sync.Mutex
	var lines []string
	go func() {
		defer func() { _ = stdinPipe.Close() }()
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			if _, err := io.WriteString(stdinPipe, line+"\n"); err != nil {
				return
			}
			mu.Lock()
			lines = append(lines, line)
			mu.Unlock()
		}
	}()

	runErr := cmd.Wait()
	code := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("program %s execution failed", args[0])
		}
	}

	mu.Lock()
	captured := append([]string(nil), lines...)
	mu.Unlock()

	return &Capture{
		ReturnCode: code,
		Stdin:      captured,
		Stdout:     outBuf.String(),
		Stderr:     errBuf.String(),
	}, nil
}
