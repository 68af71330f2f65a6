// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	WordListPath string
	Seed         int64
	HasSeed      bool
}

// Result captures an ended typing attempt.
type Result struct {
	AttemptID     string
	StartedAt     time.Time
	ElapsedSec    int
	WordsTyped    int
	Errors        int
	CharsTyped    int
	WPM           float64
	Accuracy      float64
	SentencesDone int
	Sentences     int
}
