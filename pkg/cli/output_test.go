package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) did not return a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("NewFormatter(text) did not return a TextFormatter")
	}
	if _, ok := NewFormatter("bogus").(*TextFormatter); !ok {
		t.Error("NewFormatter(unknown) should fall back to text")
	}
}

func TestJSONFormatter(t *testing.T) {
	f := &JSONFormatter{Indent: true}
	data := map[string]any{"grammar": "words", "valid": true}

	out, err := f.Format(data)
	if err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["grammar"] != "words" {
		t.Errorf("grammar = %v, want %q", decoded["grammar"], "words")
	}

	var buf bytes.Buffer
	if err := f.FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "  \"grammar\"") {
		t.Errorf("FormatTo() output = %q, want indentation", buf.String())
	}
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}

	out, err := f.Format("3 grammars built")
	if err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	if string(out) != "3 grammars built\n" {
		t.Errorf("Format() = %q, want trailing newline", out)
	}

	var buf bytes.Buffer
	if err := f.FormatTo(&buf, 42); err != nil {
		t.Fatalf("FormatTo() failed: %v", err)
	}
	if buf.String() != "42\n" {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), "42\n")
	}
}

func TestCommandError(t *testing.T) {
	inner := &CommandError{Command: "lint", Err: errTest}
	if !strings.Contains(inner.Error(), "command lint failed") {
		t.Errorf("Error() = %q, want command name", inner.Error())
	}
	if inner.Unwrap() != errTest {
		t.Error("Unwrap() did not return the wrapped error")
	}
}

var errTest = errors.New("boom")
