package parser

import "fmt"

// MalformedResponseError indicates no JSON object could be located in
// the model's reply. RawText carries the full reply for diagnosis; it
// must be logged, never silently dropped.
type MalformedResponseError struct {
	RawText string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("no JSON object found in model response (raw: %s)", Truncate(e.RawText, 500))
}

// InvalidJSONError indicates a located JSON span failed to parse.
type InvalidJSONError struct {
	RawText string
	Err     error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v (raw: %s)", e.Err, Truncate(e.RawText, 500))
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

// Truncate shortens s to maxLen bytes for log output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
