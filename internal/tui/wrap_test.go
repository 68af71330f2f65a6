package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typer/internal/session"
)

func TestBuildStyledRunesClasses(t *testing.T) {
	window := []rune("ab c")
	classes := []session.CharClass{session.Matched, session.Mismatched, session.Cursor, session.Pending}

	runes := buildStyledRunes(window, classes)
	if len(runes) != 4 {
		t.Fatalf("expected 4 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
	if runes[2].s != cursorStyle.Render(" ") {
		t.Fatalf("expected cursor style for third rune")
	}
	if !runes[2].isSpace {
		t.Fatalf("expected third rune to be a space")
	}
	if runes[3].s != pendingStyle.Render("c") {
		t.Fatalf("expected pending style for last rune")
	}
}

func TestBuildStyledRunesMissingClassesArePending(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), nil)
	for i, r := range runes {
		if r.s != pendingStyle.Render(string("ab"[i])) {
			t.Fatalf("expected pending style at %d", i)
		}
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	window := []rune("a b")
	classes := []session.CharClass{session.Matched, session.Mismatched, session.Cursor}

	runes := buildStyledRunes(window, classes)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	window := []rune("one two three")
	runes := buildStyledRunes(window, nil)

	out := wrapStyledRunes(runes, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[1] != renderStyledRunes(buildStyledRunes([]rune("three"), nil)) {
		t.Fatalf("expected second line to hold the last word")
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	runes := buildStyledRunes([]rune("abcdefgh"), nil)

	out := wrapStyledRunes(runes, 3)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("expected 2 line breaks, got %d", got)
	}
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), nil)
	if wrapStyledRunes(runes, 0) != renderStyledRunes(runes) {
		t.Fatalf("expected unwrapped output for zero width")
	}
}
