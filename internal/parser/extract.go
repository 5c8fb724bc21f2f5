package parser

// ExtractJSONObject locates the first syntactically balanced {...} span
// in free-form model output, tolerating prose, markdown fences, and
// trailing noise around it. It is a brace counter, not a JSON
// tokenizer: braces inside quoted string values are counted like
// structural ones, so a string value containing "}" can terminate the
// scan early. Callers parse the returned span and treat a parse error
// as a malformed response.
func ExtractJSONObject(text string) (string, bool) {
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
