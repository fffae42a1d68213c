package generation

import (
	"encoding/json"
	"strings"
)

const fence = "```"

// ExtractJSONArray returns the first balanced JSON array in text that holds at
// least one object, falling back to the first balanced JSON array of any kind.
// Model output often wraps the array in prose or a single fenced code block,
// and prose may carry bracketed citations such as [1] ahead of the payload.
func ExtractJSONArray(text string) (string, bool) {
	var fallback string
	if inner, ok := unfence(text); ok {
		objects, first := scanArrays(inner)
		if objects != "" {
			return objects, true
		}
		fallback = first
	}

	objects, first := scanArrays(text)
	switch {
	case objects != "":
		return objects, true
	case fallback != "":
		return fallback, true
	case first != "":
		return first, true
	}
	return "", false
}

// unfence returns the body of the first fenced block, dropping the language tag.
func unfence(text string) (string, bool) {
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	body := text[start+len(fence):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "[{") {
		body = body[nl+1:]
	}
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return body, true
}

// scanArrays walks every '[' in order and returns the first balanced valid
// JSON array containing an object element, plus the first valid array seen.
// An empty string means no such array.
func scanArrays(text string) (objects, first string) {
	for offset := 0; offset < len(text); {
		rel := strings.IndexByte(text[offset:], '[')
		if rel < 0 {
			break
		}
		start := offset + rel
		if end, ok := matchBracket(text, start); ok {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				if first == "" {
					first = candidate
				}
				if holdsObject(candidate) {
					return candidate, first
				}
			}
		}
		offset = start + 1
	}
	return "", first
}

func holdsObject(array string) bool {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(array), &elems); err != nil {
		return false
	}
	for _, e := range elems {
		if len(e) > 0 && e[0] == '{' {
			return true
		}
	}
	return false
}

// matchBracket finds the index of the ']' closing the '[' at start, skipping
// brackets inside JSON string literals.
func matchBracket(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
