// Package session implements the typing-session engine: task text, progress
// through it, scoring, timing and derived metrics.
package session

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/verte-zerg/typer/internal/generator"
	"github.com/verte-zerg/typer/internal/log"
	"github.com/verte-zerg/typer/internal/model"
)

const (
	// DefaultTimeLimit is the attempt length in seconds.
	DefaultTimeLimit = 30
	// WindowSentences is how many sentences VisibleWindow shows.
	WindowSentences = 3
)

// TextSource generates the task for an attempt.
type TextSource interface {
	Generate(words []string) (generator.Task, error)
}

// Config is the configuration of the Engine.
type Config struct {
	// Words is the corpus the task text is drawn from.
	Words []string
	// Source generates task text. Defaults to a time seeded generator.
	Source TextSource
	// TimeLimit in seconds. Defaults to DefaultTimeLimit.
	TimeLimit int
	// Clock returns the current time. Defaults to time.Now.
	Clock  func() time.Time
	Logger log.Logger
}

func (c *Config) defaults() {
	if c.Source == nil {
		c.Source = generator.New()
	}
	if c.TimeLimit <= 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "session.Engine"})
}

// Engine owns a typing attempt. It is not safe for concurrent use; a single
// control loop drives it.
type Engine struct {
	words   []string
	source  TextSource
	limit   int
	clock   func() time.Time
	baseLog log.Logger
	logger  log.Logger

	attemptID string
	text      string
	sentences [][]rune

	sentenceIdx int
	offset      int
	input       []rune
	cursor      int

	wordsTyped int
	errors     int

	startedAt time.Time
	timer     int
	state     State
}

// New generates the first task and returns an engine ready to be typed on.
func New(cfg Config) (*Engine, error) {
	cfg.defaults()
	e := &Engine{
		words:   cfg.Words,
		source:  cfg.Source,
		limit:   cfg.TimeLimit,
		clock:   cfg.Clock,
		baseLog: cfg.Logger,
		logger:  cfg.Logger,
	}
	if err := e.restart(); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply feeds an event through the state machine.
func (e *Engine) Apply(ev Event) error {
	next, apply, err := transition(e.state, ev, e.exhausted())
	if err != nil {
		return err
	}
	if !apply {
		if next == Ended && e.state != Ended {
			e.end("task exhausted")
		}
		e.state = next
		return nil
	}

	switch ev := ev.(type) {
	case RestartEvent:
		return e.restart()
	case CharEvent:
		if e.state == NotStarted {
			e.startedAt = e.clock()
			e.logger.Debugf("attempt started")
		}
		e.state = next
		e.typeChar(ev.Char)
	case BackspaceEvent:
		e.backspace()
	case TickEvent:
		e.tick(ev.Elapsed)
	}
	return nil
}

// SubmitChar scores a typed character.
func (e *Engine) SubmitChar(c rune) {
	_ = e.Apply(CharEvent{Char: c})
}

// SubmitBackspace removes the last typed character of the current sentence.
func (e *Engine) SubmitBackspace() {
	_ = e.Apply(BackspaceEvent{})
}

// Tick sets the timer to elapsed seconds while the attempt is active.
func (e *Engine) Tick(elapsed int) {
	_ = e.Apply(TickEvent{Elapsed: elapsed})
}

// Restart regenerates the task and resets all progress. On failure the
// current attempt is left untouched.
func (e *Engine) Restart() error {
	return e.Apply(RestartEvent{})
}

// ElapsedAt returns whole seconds between the attempt start and now, or 0
// before the first keystroke.
func (e *Engine) ElapsedAt(now time.Time) int {
	if e.state == NotStarted || e.startedAt.IsZero() {
		return 0
	}
	d := now.Sub(e.startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (e *Engine) restart() error {
	task, err := e.source.Generate(e.words)
	if err != nil {
		return fmt.Errorf("could not generate task: %w", err)
	}
	sentences := make([][]rune, 0, len(task.Sentences))
	for _, s := range task.Sentences {
		sentences = append(sentences, []rune(s))
	}

	e.attemptID = ulid.Make().String()
	e.logger = e.baseLog.WithValues(log.Kv{"attempt": e.attemptID})
	e.text = task.Text
	e.sentences = sentences
	e.sentenceIdx = 0
	e.offset = 0
	e.input = nil
	e.cursor = 0
	e.wordsTyped = 0
	e.errors = 0
	e.startedAt = time.Time{}
	e.timer = 0
	e.state = NotStarted
	e.logger.Debugf("new task with %d sentences", len(sentences))
	return nil
}

func (e *Engine) typeChar(c rune) {
	expected, ok := e.expected()
	if !ok {
		e.end("task exhausted")
		return
	}
	sentence := e.sentences[e.sentenceIdx]
	if expected != c {
		e.errors++
		if expected != ' ' && c == ' ' {
			e.skipWord(sentence)
		}
	}
	if expected == c && c == ' ' {
		e.wordsTyped++
	}
	e.input = append(e.input, c)
	e.offset++
	e.cursor++
	if e.offset >= len(sentence) {
		e.advance()
	}
}

// skipWord fills the rest of the current word with spaces so that the typed
// space lands on the next space of the sentence, or on its last character.
func (e *Engine) skipWord(sentence []rune) {
	rest := sentence[e.offset:]
	n := len(rest) - 1
	for i, r := range rest {
		if r == ' ' {
			n = i
			break
		}
	}
	for i := 0; i < n; i++ {
		e.input = append(e.input, ' ')
	}
	e.offset += n
	e.cursor += n
}

func (e *Engine) advance() {
	e.sentenceIdx++
	e.offset = 0
	e.input = nil
	if e.exhausted() {
		e.end("task completed")
	}
}

func (e *Engine) backspace() {
	if len(e.input) == 0 || e.cursor == 0 {
		return
	}
	e.input = e.input[:len(e.input)-1]
	e.cursor--
	if e.offset > 0 {
		e.offset--
	}
}

func (e *Engine) tick(elapsed int) {
	if elapsed < 0 {
		elapsed = 0
	}
	e.timer = elapsed
	if e.timer >= e.limit {
		e.timer = e.limit
		e.end("time limit reached")
	}
}

func (e *Engine) end(reason string) {
	if e.state == Ended {
		return
	}
	e.state = Ended
	r := e.Result()
	e.logger.WithValues(log.Kv{
		"wpm":       int(r.WPM),
		"accuracy":  int(r.Accuracy),
		"words":     r.WordsTyped,
		"errors":    r.Errors,
		"chars":     r.CharsTyped,
		"elapsed":   r.ElapsedSec,
		"sentences": fmt.Sprintf("%d/%d", r.SentencesDone, r.Sentences),
	}).Infof("attempt ended: %s", reason)
}

func (e *Engine) exhausted() bool {
	return e.sentenceIdx >= len(e.sentences)
}

func (e *Engine) expected() (rune, bool) {
	if e.exhausted() {
		return 0, false
	}
	sentence := e.sentences[e.sentenceIdx]
	if e.offset >= len(sentence) {
		return 0, false
	}
	return sentence[e.offset], true
}

// AttemptID identifies the current attempt in logs.
func (e *Engine) AttemptID() string { return e.attemptID }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Timer returns the elapsed whole seconds, clamped to the time limit.
func (e *Engine) Timer() int { return e.timer }

// TimeLimit returns the attempt length in seconds.
func (e *Engine) TimeLimit() int { return e.limit }

// WordsTyped returns the number of words completed by a matching space.
func (e *Engine) WordsTyped() int { return e.wordsTyped }

// Errors returns the number of mismatched keystrokes.
func (e *Engine) Errors() int { return e.errors }

// Cursor returns the global position: characters typed across the attempt.
func (e *Engine) Cursor() int { return e.cursor }

// SentenceIndex returns the index of the sentence being typed.
func (e *Engine) SentenceIndex() int { return e.sentenceIdx }

// SentenceOffset returns the position within the current sentence.
func (e *Engine) SentenceOffset() int { return e.offset }

// SentenceCount returns the number of sentences in the task.
func (e *Engine) SentenceCount() int { return len(e.sentences) }

// Input returns what was typed for the current sentence.
func (e *Engine) Input() string { return string(e.input) }

// Text returns the full task text.
func (e *Engine) Text() string { return e.text }

// StartedAt returns the time of the first keystroke, zero before it.
func (e *Engine) StartedAt() time.Time { return e.startedAt }

// Sentences returns a copy of the task sentences.
func (e *Engine) Sentences() []string {
	out := make([]string, len(e.sentences))
	for i, s := range e.sentences {
		out[i] = string(s)
	}
	return out
}

// Result summarises the attempt.
func (e *Engine) Result() model.Result {
	m := e.Metrics()
	return model.Result{
		AttemptID:     e.attemptID,
		StartedAt:     e.startedAt,
		ElapsedSec:    e.timer,
		WordsTyped:    e.wordsTyped,
		Errors:        e.errors,
		CharsTyped:    e.cursor,
		WPM:           m.WPM,
		Accuracy:      m.Accuracy,
		SentencesDone: min(e.sentenceIdx, len(e.sentences)),
		Sentences:     len(e.sentences),
	}
}
