package reward

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	assertPattern   = regexp.MustCompile(`^(\s*)(assert\s+.+)$`)
	assertAnywhere  = regexp.MustCompile(`(?m)^(\s*)(assert\s+.+)`)
	checkDefPattern = regexp.MustCompile(`def\s+check\s*\(`)
	indentPattern   = regexp.MustCompile(`^(\s*)`)
)

// WrapTestsForCompleteExecution converts a fail-fast `def check(candidate):
// assert …` harness into a run-all harness that tallies passes and prints a
// single machine-readable "TESTS_PASSED:p/t" line. A single early failure
// must never mask later passes; see spec §4.4. Grounded on
// test_wrapper.rs's wrap_tests_for_complete_execution, translated line for
// line from the Rust state machine.
func WrapTestsForCompleteExecution(testCode, entryPoint string) string {
	if !assertAnywhere.MatchString(testCode) {
		return testCode
	}

	lines := strings.Split(testCode, "\n")
	wrapped := make([]string, 0, len(lines)+16)

	inCheckFunction := false
	checkIndent := ""

	for _, line := range lines {
		if checkDefPattern.MatchString(line) {
			inCheckFunction = true
			if m := indentPattern.FindStringSubmatch(line); m != nil {
				checkIndent = m[1]
			}
			wrapped = append(wrapped, line)
			wrapped = append(wrapped, checkIndent+"    _results = []")
			continue
		}

		if inCheckFunction {
			if m := assertPattern.FindStringSubmatch(line); m != nil {
				indent, assertion := m[1], m[2]
				wrapped = append(wrapped,
					indent+"try:",
					indent+"    "+assertion,
					indent+"    _results.append(True)",
					indent+"except:",
					indent+"    _results.append(False)",
				)
				continue
			}
		}

		if inCheckFunction {
			trimmed := strings.TrimSpace(line)
			functionEnded := trimmed == "" ||
				(!strings.HasPrefix(line, checkIndent+" ") && !strings.HasPrefix(line, checkIndent+"\t"))

			if functionEnded {
				wrapped = append(wrapped, checkIndent+"    return _results", "")
				inCheckFunction = false
				if trimmed != "" {
					wrapped = append(wrapped, line)
				}
				continue
			}
		}

		wrapped = append(wrapped, line)
	}

	if inCheckFunction {
		wrapped = append(wrapped, checkIndent+"    return _results", "")
	}

	wrapped = append(wrapped,
		fmt.Sprintf("_test_results = check(%s)", entryPoint),
		"",
		"# Report test results",
		"_passed = sum(_test_results)",
		"_total = len(_test_results)",
		`print(f"TESTS_PASSED:{_passed}/{_total}")`,
		"exit(0 if _passed == _total else 1)",
	)

	return strings.Join(wrapped, "\n")
}
