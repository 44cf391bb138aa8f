package reward

import (
	"regexp"
	"strings"
)

// Regex patterns compiled once at package init, mirroring the original
// implementation's once_cell::Lazy<Regex> statics (extraction.rs). There is
// no semantic subtlety to lazily deferring compilation in Go — package-level
// vars already run at process init, before any caller can observe them.
var (
	answerPattern       = regexp.MustCompile(`(?is)<answer>(.*?)</answer>`)
	codeBlockPattern    = regexp.MustCompile(`(?s)` + "```python\\s*\\n(.*?)\\n```")
	markdownStartPython = regexp.MustCompile("^```python\\s*\\n")
	markdownStartPlain  = regexp.MustCompile("^```\\s*\\n")
	markdownEnd         = regexp.MustCompile("\\n```\\s*$")
	thinkPattern        = regexp.MustCompile(`(?is)<think>.*?</think>`)
)

// ExtractCode pulls candidate Python source out of a completion. Total,
// never fails: first match wins among (1) an <answer> envelope with its
// outermost fence stripped, (2) a top-level ```python fence, (3) the whole
// completion trimmed. Grounded on extraction.rs's
// extract_code_from_completion.
func ExtractCode(completion string) string {
	if m := answerPattern.FindStringSubmatch(completion); m != nil {
		code := strings.TrimSpace(m[1])
		code = markdownStartPython.ReplaceAllString(code, "")
		code = markdownStartPlain.ReplaceAllString(code, "")
		code = markdownEnd.ReplaceAllString(code, "")
		return code
	}

	if m := codeBlockPattern.FindStringSubmatch(completion); m != nil {
		return strings.TrimSpace(m[1])
	}

	return strings.TrimSpace(completion)
}
