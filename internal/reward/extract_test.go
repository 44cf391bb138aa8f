package reward

import "testing"

func TestExtractCode(t *testing.T) {
	cases := []struct {
		name       string
		completion string
		want       string
	}{
		{
			name:       "answer with python fence",
			completion: "<think>reasoning</think>\n<answer>```python\nprint('hi')\n```</answer>",
			want:       "print('hi')",
		},
		{
			name:       "answer with plain fence",
			completion: "<answer>```\nprint('hi')\n```</answer>",
			want:       "print('hi')",
		},
		{
			name:       "answer without fence",
			completion: "<answer>print('hi')</answer>",
			want:       "print('hi')",
		},
		{
			name:       "top-level python fence no answer tag",
			completion: "some text\n```python\ndef mul(a,b):\n    return a*b\n```\nmore text",
			want:       "def mul(a,b):\n    return a*b",
		},
		{
			name:       "plain text fallback",
			completion: "  def add(a,b): return a+b  ",
			want:       "def add(a,b): return a+b",
		},
		{
			name:       "first answer wins among multiple",
			completion: "<answer>first</answer><answer>second</answer>",
			want:       "first",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractCode(c.completion)
			if got != c.want {
				t.Errorf("ExtractCode(%q) = %q, want %q", c.completion, got, c.want)
			}
		})
	}
}

func TestExtractCode_IdempotentOnPureSource(t *testing.T) {
	src := "def add(a, b):\n    return a + b\n"
	once := ExtractCode(src)
	twice := ExtractCode(once)
	if once != twice {
		t.Errorf("extractor not idempotent: once=%q twice=%q", once, twice)
	}
}
