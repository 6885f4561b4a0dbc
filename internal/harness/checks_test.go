package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCheck(t *testing.T, dir, name, code string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRunChecksPassing(t *testing.T) {
	dir := t.TempDir()
	writeCheck(t, dir, "ok.lua", `return exit_code == 0 and string.find(stdout, "hello", 1, true) ~= nil`)

	failures := runChecks("greeting", []string{"ok.lua"}, dir, nil, execResult{exitCode: 0, stdout: "hello\n"})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
}

func TestRunChecksFailingBoolean(t *testing.T) {
	dir := t.TempDir()
	writeCheck(t, dir, "no.lua", `return false`)

	failures := runChecks("greeting", []string{"no.lua"}, dir, nil, execResult{})
	if len(failures) != 1 || !strings.Contains(failures[0], "no.lua failed") {
		t.Fatalf("unexpected failures: %v", failures)
	}
}

func TestRunChecksStringMessage(t *testing.T) {
	dir := t.TempDir()
	writeCheck(t, dir, "msg.lua", `return "wrong greeting"`)

	failures := runChecks("greeting", []string{"msg.lua"}, dir, nil, execResult{})
	if len(failures) != 1 || !strings.Contains(failures[0], "wrong greeting") {
		t.Fatalf("unexpected failures: %v", failures)
	}
}

func TestRunChecksMissingScript(t *testing.T) {
	failures := runChecks("greeting", []string{"nope.lua"}, t.TempDir(), nil, execResult{})
	if len(failures) != 1 {
		t.Fatalf("unexpected failures: %v", failures)
	}
}

func TestRunChecksSeesGlobals(t *testing.T) {
	dir := t.TempDir()
	writeCheck(t, dir, "globals.lua", `
if case ~= "greeting" then return "bad case" end
if argv[1] ~= "--flag" then return "bad argv" end
if exit_code ~= 3 then return "bad exit code" end
if stderr ~= "oops\n" then return "bad stderr" end
return true`)

	failures := runChecks("greeting", []string{"globals.lua"}, dir, []string{"--flag"}, execResult{exitCode: 3, stderr: "oops\n"})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
}

func TestRunChecksSandboxBlocksLoops(t *testing.T) {
	dir := t.TempDir()
	writeCheck(t, dir, "spin.lua", `while true do end`)

	failures := runChecks("greeting", []string{"spin.lua"}, dir, nil, execResult{})
	if len(failures) != 1 || !strings.Contains(failures[0], "sandbox") {
		t.Fatalf("unexpected failures: %v", failures)
	}
}
