package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New(CodeInfiniteUpdate)
	if err.Code != CodeInfiniteUpdate {
		t.Errorf("expected code %s, got %s", CodeInfiniteUpdate, err.Code)
	}
	if err.Category != CategoryScheduler {
		t.Errorf("expected scheduler category, got %s", err.Category)
	}
	if err.Message == "" || err.Suggestion == "" {
		t.Error("expected registry template to fill message and suggestion")
	}
	if !strings.HasPrefix(err.Error(), "R003: ") {
		t.Errorf("expected code prefix, got %q", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("R999")
	if err.Code != "R999" || err.Message != "Unknown error" {
		t.Errorf("unexpected error for unknown code: %+v", err)
	}
}

func TestRegistryCoversAllCodes(t *testing.T) {
	for _, code := range []string{
		CodeWatcherGetter,
		CodeWatcherCallback,
		CodeInfiniteUpdate,
		CodeRootStateMutation,
		CodeInvalidExpression,
	} {
		tmpl, ok := registry[code]
		if !ok {
			t.Errorf("code %s missing from registry", code)
			continue
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has an incomplete template", code)
		}
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New(CodeWatcherGetter).Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	var le *LumosError
	if !stderrors.As(error(err), &le) || le.Code != CodeWatcherGetter {
		t.Errorf("expected errors.As to recover the LumosError, got %v", le)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := Newf(CategoryUsage, "bad value %d", 7).
		WithDetail("details").
		WithSuggestion("try again")
	if err.Message != "bad value 7" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Detail != "details" || err.Suggestion != "try again" {
		t.Errorf("unexpected detail/suggestion: %+v", err)
	}
	// No code: Error() is the bare message.
	if err.Error() != "bad value 7" {
		t.Errorf("unexpected Error() %q", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeWatcherGetter) != nil {
		t.Error("expected nil for nil input")
	}

	le := New(CodeWatcherCallback)
	if got := FromError(le, CodeWatcherGetter); got != le {
		t.Error("expected an existing LumosError to pass through unchanged")
	}

	plain := fmt.Errorf("plain")
	wrapped := FromError(plain, CodeWatcherGetter)
	if wrapped.Code != CodeWatcherGetter || wrapped.Wrapped != plain {
		t.Errorf("expected plain error wrapped under %s, got %+v", CodeWatcherGetter, wrapped)
	}
}

func TestFormat(t *testing.T) {
	out := Format(New(CodeRootStateMutation).Wrap(fmt.Errorf("boom")))
	for _, want := range []string{"[R004]", "(usage)", "hint:", "cause: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in formatted output:\n%s", want, out)
		}
	}

	if got := Format(fmt.Errorf("plain")); got != "plain" {
		t.Errorf("expected plain errors rendered as-is, got %q", got)
	}
}
