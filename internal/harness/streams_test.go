package harness

import (
	"strings"
	"testing"
)

func TestCompareStreamsEqual(t *testing.T) {
	ok, msg := compareStreams("hello\nworld\n", "hello\nworld\n")
	if !ok {
		t.Fatalf("unexpected failure: %s", msg)
	}
}

func TestCompareStreamsIgnoresExtraReceivedLines(t *testing.T) {
	ok, msg := compareStreams("hello", "hello\nextra\n")
	if !ok {
		t.Fatalf("unexpected failure: %s", msg)
	}
}

func TestCompareStreamsTrailingNewlineAssertsEnd(t *testing.T) {
	// A trailing newline on the expected side yields a final empty line,
	// which must match an empty line on the received side.
	if ok, _ := compareStreams("hello\n", "hello\nextra\n"); ok {
		t.Fatalf("expected failure for extra line after terminated expected")
	}
	if ok, msg := compareStreams("hello\n", "hello\n"); !ok {
		t.Fatalf("unexpected failure: %s", msg)
	}
}

func TestCompareStreamsCollapsesNewlineRuns(t *testing.T) {
	ok, msg := compareStreams("a\n\n\nb\n", "a\nb\n")
	if !ok {
		t.Fatalf("unexpected failure: %s", msg)
	}
}

func TestCompareStreamsReportsMismatch(t *testing.T) {
	ok, msg := compareStreams("Welcome to the world, Alice!\n", "Welcome to the world, Bob!\n")
	if ok {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(msg, "Expected \"Welcome to the world, Alice!\"") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "Received \"Welcome to the world, Bob!\"") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "^ ERROR") {
		t.Fatalf("missing column locator: %s", msg)
	}
}

func TestMismatchColumn(t *testing.T) {
	cases := []struct {
		name string
		e    string
		r    string
		want int
	}{
		{name: "first-char", e: "abc", r: "xbc", want: 0},
		{name: "within-chunk", e: "abcdef", r: "abxdef", want: 2},
		{name: "later-chunk", e: "0123456789", r: "0123456x89", want: 7},
		{name: "shorter-received", e: "abcdef", r: "abc", want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mismatchColumn(tc.e, tc.r); got != tc.want {
				t.Fatalf("mismatchColumn(%q, %q) = %d, want %d", tc.e, tc.r, got, tc.want)
			}
		})
	}
}

func TestCompareStreamsEmptyExpectedAssertsSilence(t *testing.T) {
	if ok, _ := compareStreams("", ""); !ok {
		t.Fatalf("empty vs empty must pass")
	}
	if ok, _ := compareStreams("", "noise\n"); ok {
		t.Fatalf("empty expected vs output must fail")
	}
}
