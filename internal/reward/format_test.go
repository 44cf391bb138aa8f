package reward

import "testing"

func TestScoreFormat(t *testing.T) {
	completions := []string{
		"<think>a</think><answer>b</answer>",
		"no tags",
		"<think>only</think>",
		"",
	}
	want := []float64{1.0, 0.0, 0.0, 0.0}

	got := ScoreFormat(completions)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestScoreFormat_EmptyBatch(t *testing.T) {
	got := ScoreFormat(nil)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
