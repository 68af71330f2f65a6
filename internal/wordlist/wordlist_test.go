package wordlist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typer/internal/wordlist"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input    string
		expWords []string
		expErr   error
	}{
		"Space separated words should be split.": {
			input:    "one two  three",
			expWords: []string{"one", "two", "three"},
		},
		"Line separated words should be split.": {
			input:    "one\ntwo\r\n\nthree\n",
			expWords: []string{"one", "two", "three"},
		},
		"Empty input should fail.": {
			input:  "  \n\t ",
			expErr: wordlist.ErrEmptyWordList,
		},
		"Non printable words should be dropped.": {
			input:    "ok bad\x01 fine",
			expWords: []string{"ok", "fine"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			words, err := wordlist.Parse(strings.NewReader(test.input), wordlist.Printable)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expWords, words)
		})
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	_, err := wordlist.LoadWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "words.txt")
	require.NoError(t, wordlist.Save(path, []string{"alpha", "beta"}))

	words, err := wordlist.LoadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, words)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestDefault(t *testing.T) {
	words := wordlist.Default()
	require.NotEmpty(t, words)
	for _, w := range words {
		assert.True(t, wordlist.Printable(w), "word %q", w)
	}
}
