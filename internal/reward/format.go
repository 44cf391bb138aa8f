package reward

// ScoreFormat returns 1.0 for each completion that contains both a
// <think>…</think> and an <answer>…</answer> segment (case-insensitive,
// DOTALL), 0.0 otherwise. Shape-only — content is never inspected. Grounded
// on reward_evaluator.rs's has_valid_format/evaluate_format.
func ScoreFormat(completions []string) []float64 {
	scores := make([]float64, len(completions))
	for i, c := range completions {
		if hasValidFormat(c) {
			scores[i] = 1.0
		}
	}
	return scores
}

func hasValidFormat(text string) bool {
	return thinkPattern.MatchString(text) && answerPattern.MatchString(text)
}
