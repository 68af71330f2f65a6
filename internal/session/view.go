package session

import "strings"

// CharClass classifies a character of the visible window for rendering.
type CharClass int

const (
	// Pending characters have not been reached yet.
	Pending CharClass = iota
	// Matched characters were typed correctly.
	Matched
	// Mismatched characters were typed wrong or skipped.
	Mismatched
	// Cursor marks the next expected character.
	Cursor
)

// Metrics are derived from the counters and the timer.
type Metrics struct {
	WPM      float64
	Accuracy float64
}

// Metrics computes words per minute and accuracy percentage.
func (e *Engine) Metrics() Metrics {
	m := Metrics{Accuracy: 100}
	if e.timer > 0 && e.state != NotStarted {
		m.WPM = float64(e.wordsTyped) / (float64(e.timer) / 60)
	}
	if e.cursor > 0 {
		correct := e.cursor - min(e.cursor, e.errors)
		m.Accuracy = float64(correct) / float64(e.cursor) * 100
	}
	return m
}

// VisibleWindow returns the current sentence followed by up to two more,
// joined by spaces. It is empty once the task is exhausted.
func (e *Engine) VisibleWindow() string {
	if e.exhausted() {
		return ""
	}
	end := min(e.sentenceIdx+WindowSentences, len(e.sentences))
	parts := make([]string, 0, end-e.sentenceIdx)
	for _, s := range e.sentences[e.sentenceIdx:end] {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, " ")
}

// Classes returns one CharClass per rune of VisibleWindow.
func (e *Engine) Classes() []CharClass {
	window := []rune(e.VisibleWindow())
	out := make([]CharClass, len(window))
	for i, r := range window {
		switch {
		case i < len(e.input):
			if e.input[i] == r {
				out[i] = Matched
			} else {
				out[i] = Mismatched
			}
		case i == len(e.input):
			out[i] = Cursor
		default:
			out[i] = Pending
		}
	}
	return out
}

// Progress returns the 1-based line being typed and the last line shown in
// the visible window.
func (e *Engine) Progress() (line, shown int) {
	total := len(e.sentences)
	line = min(e.sentenceIdx+1, total)
	shown = min(e.sentenceIdx+WindowSentences, total)
	return line, shown
}
