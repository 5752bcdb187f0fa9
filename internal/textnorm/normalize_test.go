package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"empty input": {
			in:   "",
			want: "",
		},
		"self gloss": {
			in:   "Berlin(Berlin)",
			want: "Berlin",
		},
		"nested self gloss": {
			in:   "(SPD(SPD))",
			want: "(SPD)",
		},
		"different gloss is kept": {
			in:   "New York(NY)",
			want: "New York(NY)",
		},
		"repeated self gloss": {
			in:   "Putin(Putin) met Putin(Putin) again",
			want: "Putin met Putin again",
		},
		"case insensitive self gloss": {
			in:   "NATO(nato) summit",
			want: "NATO summit",
		},
		"multi word name with space before gloss": {
			in:   "Olaf Scholz (Olaf Scholz) spoke",
			want: "Olaf Scholz spoke",
		},
		"accented and hyphenated names": {
			in:   "Baden-Württemberg(baden-württemberg) and Zoë O'Neil(Zoë O'Neil)",
			want: "Baden-Württemberg and Zoë O'Neil",
		},
		"partial word is not a gloss": {
			in:   "Neuberlin(Berlin)",
			want: "Neuberlin(Berlin)",
		},
		"second occurrence of a gloss is removed": {
			in:   "Munich(München) hosts fans. Later Munich(München) celebrated.",
			want: "Munich(München) hosts fans. Later Munich celebrated.",
		},
		"repeated gloss with leading space": {
			in:   "Мюнхен (München) и снова Мюнхен (München).",
			want: "Мюнхен (München) и снова Мюнхен.",
		},
		"distinct glosses survive": {
			in:   "Scholz(Scholz) met Merkel(Merkel) and Macron(Macron)",
			want: "Scholz met Merkel and Macron",
		},
		"plain text untouched": {
			in:   "no parentheses here",
			want: "no parentheses here",
		},
		"newline before duplicate is preserved": {
			in:   "BMW(BMW AG) grew.\n(BMW AG) shares rose.",
			want: "BMW(BMW AG) grew.\n shares rose.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Berlin(Berlin)",
		"(SPD(SPD))",
		"Putin(Putin) met Putin(Putin) again",
		"Bar (Q) went home. Bar (Q)(Bar) returned.",
		"(A(A)B)",
		"Frankfurt(Frankfurt am Main) and Frankfurt(frankfurt AM main)",
		"((()))",
		"unbalanced (paren",
		"ends with )( odd",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
