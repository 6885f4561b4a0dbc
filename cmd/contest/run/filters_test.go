package run

import "testing"

func TestFilterCasesNoPatterns(t *testing.T) {
	names := []string{"greeting", "farewell"}
	got, err := filterCases(names, nil, nil)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestFilterCasesInclude(t *testing.T) {
	names := []string{"greeting", "farewell", "greeting-empty"}
	got, err := filterCases(names, []string{"^greeting"}, nil)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 || got[0] != "greeting" || got[1] != "greeting-empty" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestFilterCasesExcludeWins(t *testing.T) {
	names := []string{"greeting", "greeting-slow"}
	got, err := filterCases(names, []string{"greeting"}, []string{"slow"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0] != "greeting" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestFilterCasesBadPattern(t *testing.T) {
	if _, err := filterCases([]string{"a"}, []string{"("}, nil); err == nil {
		t.Fatalf("expected error")
	}
}
