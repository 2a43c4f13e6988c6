package ui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRuleSizedToTerminal(t *testing.T) {
	// Test binaries run without a tty, so termWidth falls back to 80 and
	// the rule leaves the two-column margin.
	got := rule()
	if n := utf8.RuneCountInString(got); n != 78 {
		t.Errorf("rule length = %d, want 78", n)
	}
	if strings.Trim(got, "─") != "" {
		t.Errorf("rule contains unexpected characters: %q", got)
	}
}
