package wordlist

import (
	_ "embed"
	"strings"
)

//go:embed words.txt
var defaultWords string

// Default returns the built-in word list.
func Default() []string {
	words, err := Parse(strings.NewReader(defaultWords), Printable)
	if err != nil {
		return nil
	}
	return words
}
