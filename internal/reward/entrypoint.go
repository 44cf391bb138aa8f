package reward

import "strings"

// ValidateEntryPoint cheaply rejects a completion that hallucinates a
// different function/class name before paying sandbox cost. Textual, not
// syntactic, by design (spec §4.3). An empty or "null" entry point always
// passes. Grounded on reward_evaluator.rs's inline entry-point checks in
// evaluate_single.
func ValidateEntryPoint(codeWithPrelude, entryPoint string) bool {
	if entryPoint == "" || entryPoint == "null" {
		return true
	}

	method := entryPoint
	if idx := strings.LastIndex(entryPoint, "."); idx >= 0 {
		method = entryPoint[idx+1:]
	}

	if !strings.Contains(codeWithPrelude, "def "+method) {
		return false
	}

	if strings.Contains(entryPoint, "Solution().") && !strings.Contains(codeWithPrelude, "class Solution") {
		return false
	}

	return true
}
