package notifier

import (
	"strings"
	"testing"
)

func TestSplitMessage_ShortTextUnchanged(t *testing.T) {
	chunks := SplitMessage("hello\nworld", 4000)
	if len(chunks) != 1 || chunks[0] != "hello\nworld" {
		t.Errorf("expected single unchanged chunk, got %v", chunks)
	}
}

func TestSplitMessage_PrefersNewlineBoundary(t *testing.T) {
	lines := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		lines = append(lines, strings.Repeat("a", 10))
	}
	text := strings.Join(lines, "\n")

	chunks := SplitMessage(text, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(c))
		}
		if strings.HasPrefix(c, "\n") || strings.HasSuffix(c, "\n") {
			t.Errorf("chunk %d has dangling newline: %q", i, c)
		}
	}
	// no content lost
	if strings.Join(chunks, "\n") != text {
		t.Error("rejoined chunks do not reproduce the original text")
	}
}

func TestSplitMessage_HardSplitWithoutNewlines(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := SplitMessage(text, 100)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(c))
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("hard split lost content")
	}
}
