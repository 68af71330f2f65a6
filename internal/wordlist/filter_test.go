package wordlist

import "testing"

func TestPrintable(t *testing.T) {
	for _, word := range []string{"hello", "résumé", "don’t", "co-op"} {
		if !Printable(word) {
			t.Fatalf("expected %q to be kept", word)
		}
	}
	for _, word := range []string{"", "tab\there", "bell\a", "nb sp"} {
		if Printable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}
