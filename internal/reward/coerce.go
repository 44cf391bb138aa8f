package reward

import "fmt"

// CompletionItem is the tagged variant spec §9 calls for in place of the
// Rust binding layer's dynamic PyList shapes. The host binding layer
// (outside this module's scope, per spec §1) is responsible for producing
// one of these per item; CoerceCompletions turns a slice of them into the
// plain strings the core pipeline consumes.
type CompletionItem interface{ isCompletionItem() }

// RawText is a completion passed as a bare string.
type RawText string

func (RawText) isCompletionItem() {}

// KeyedMap is a completion passed as e.g. {"role": "assistant", "content": "..."}.
// A missing or non-string content key coerces to "".
type KeyedMap struct{ Content *string }

func (KeyedMap) isCompletionItem() {}

// SingletonList is a completion passed as a one-element list, typically
// [{"content": "..."}] (TRL's chat-completion convention). Only the first
// element is consulted.
type SingletonList struct{ Item CompletionItem }

func (SingletonList) isCompletionItem() {}

// OtherStringifiable is any value that doesn't match the shapes above; it
// coerces via its string representation, mirroring the Rust binding's
// item.str()? fallback.
type OtherStringifiable struct{ Repr string }

func (OtherStringifiable) isCompletionItem() {}

// CoerceCompletions deterministically reduces tagged completion items to
// plain strings. Grounded on bindings.rs's
// extract_completions_from_pylist: string direct; dict with "content" key;
// list-of-dict taking the first element (dict->content, else stringified);
// fallback stringify.
func CoerceCompletions(items []CompletionItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = coerceOne(item)
	}
	return out
}

func coerceOne(item CompletionItem) string {
	switch v := item.(type) {
	case RawText:
		return string(v)
	case KeyedMap:
		if v.Content == nil {
			return ""
		}
		return *v.Content
	case SingletonList:
		if v.Item == nil {
			return ""
		}
		if km, ok := v.Item.(KeyedMap); ok {
			if km.Content == nil {
				return ""
			}
			return *km.Content
		}
		return coerceOne(v.Item)
	case OtherStringifiable:
		return v.Repr
	default:
		return fmt.Sprintf("%v", item)
	}
}
