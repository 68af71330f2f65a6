// Package generator builds typing text sequences.
package generator

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

const (
	// TaskTokens is the number of draws made from the corpus per task.
	TaskTokens = 255
	// MinSentenceWords is the smallest word count of a closed sentence.
	MinSentenceWords = 10
	// MaxSentenceWords is the largest word count of a closed sentence.
	MaxSentenceWords = 15
)

// ErrEmptyCorpus is returned when there are no words to draw from.
var ErrEmptyCorpus = errors.New("corpus has no usable words")

// Task is a generated exercise: the flat text and its sentence partition.
type Task struct {
	Text      string
	Sentences []string
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator whose output is fully determined by seed.
func NewWithSeed(seed int64) *Generator {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate draws TaskTokens words uniformly with replacement and splits them
// into sentences of MinSentenceWords..MaxSentenceWords words.
func (g *Generator) Generate(words []string) (Task, error) {
	if len(words) == 0 {
		return Task{}, ErrEmptyCorpus
	}
	var b strings.Builder
	for i := 0; i < TaskTokens; i++ {
		word := strings.TrimSpace(words[g.rnd.Intn(len(words))])
		if word == "" {
			continue
		}
		b.WriteString(word)
		b.WriteByte(' ')
	}
	text := b.String()
	if text == "" {
		return Task{}, ErrEmptyCorpus
	}
	return Task{
		Text:      text,
		Sentences: g.split(strings.Fields(text)),
	}, nil
}

func (g *Generator) split(tokens []string) []string {
	var sentences []string
	var current []string
	cutoff := g.cutoff()
	for _, token := range tokens {
		current = append(current, token)
		if len(current) >= cutoff {
			sentences = append(sentences, strings.Join(current, " "))
			current = current[:0]
			cutoff = g.cutoff()
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, strings.Join(current, " "))
	}
	return sentences
}

func (g *Generator) cutoff() int {
	return MinSentenceWords + g.rnd.Intn(MaxSentenceWords-MinSentenceWords+1)
}
