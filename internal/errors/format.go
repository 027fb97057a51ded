package errors

import "strings"

// Format renders a LumosError as a multi-line diagnostic: code and message
// first, then detail, suggestion, and cause when present. Plain errors are
// rendered as-is.
func Format(err error) string {
	le, ok := err.(*LumosError)
	if !ok {
		return err.Error()
	}

	var b strings.Builder
	if le.Code != "" {
		b.WriteString("[" + le.Code + "] ")
	}
	b.WriteString(le.Message)
	if le.Category != "" {
		b.WriteString(" (" + string(le.Category) + ")")
	}
	if le.Detail != "" {
		b.WriteString("\n  " + le.Detail)
	}
	if le.Suggestion != "" {
		b.WriteString("\n  hint: " + le.Suggestion)
	}
	if le.Wrapped != nil {
		b.WriteString("\n  cause: " + le.Wrapped.Error())
	}
	return b.String()
}
