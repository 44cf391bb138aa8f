package reward

import (
	"strings"
	"testing"
)

func TestWrapTestsForCompleteExecution_NoAssertionsIsIdentity(t *testing.T) {
	src := "def check(candidate):\n    pass\n"
	got := WrapTestsForCompleteExecution(src, "add")
	if got != src {
		t.Errorf("expected identity on assertion-free input, got %q", got)
	}
}

func TestWrapTestsForCompleteExecution_WrapsEachAssertion(t *testing.T) {
	src := "def check(candidate):\n    assert candidate(1, 2) == 3\n    assert candidate(0, 0) == 0\n"
	got := WrapTestsForCompleteExecution(src, "add")

	for _, want := range []string{
		"def check(candidate):",
		"    _results = []",
		"    try:",
		"        assert candidate(1, 2) == 3",
		"        _results.append(True)",
		"    except:",
		"        _results.append(False)",
		"        assert candidate(0, 0) == 0",
		"    return _results",
		"_test_results = check(add)",
		"_passed = sum(_test_results)",
		"_total = len(_test_results)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("wrapped output missing expected fragment %q\nfull output:\n%s", want, got)
		}
	}

	if strings.Contains(got, "exit(0 if _passed == _total else 1)") == false {
		t.Error("missing exit-code reporting line")
	}
}

func TestWrapTestsForCompleteExecution_NoUnguardedAssertRemainsInCheck(t *testing.T) {
	src := "def check(candidate):\n    assert candidate(1) == 1\n"
	wrapped := WrapTestsForCompleteExecution(src, "f")

	// Every assert inside def check(...) must sit directly under a try:
	// line. The guarded asserts still match the assert pattern, so wrapping
	// the wrapped output again nests a second try around each of them;
	// the result still has no unguarded assert. Input with zero assert
	// lines is returned unchanged.
	if !assertAnywhere.MatchString(wrapped) {
		t.Fatal("expected wrapped output to still contain assert lines (now guarded)")
	}
	for _, text := range []string{wrapped, WrapTestsForCompleteExecution(wrapped, "f")} {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if assertPattern.MatchString(line) && (i == 0 || strings.TrimSpace(lines[i-1]) != "try:") {
				t.Errorf("unguarded assert %q in:\n%s", line, text)
			}
		}
	}

	noAssertSrc := "def check(candidate):\n    return True\n"
	twice := WrapTestsForCompleteExecution(noAssertSrc, "f")
	if twice != noAssertSrc {
		t.Errorf("expected identity on assert-free input, got %q", twice)
	}
}

func TestWrapTestsForCompleteExecution_PreservesCodeAfterCheck(t *testing.T) {
	src := "def check(candidate):\n    assert candidate() == 1\n\nprint('after')\n"
	got := WrapTestsForCompleteExecution(src, "f")
	if !strings.Contains(got, "print('after')") {
		t.Error("expected trailing code after check() to be preserved")
	}
}
