// Package textnorm removes redundant parenthetical glosses from translated text.
//
// Translations are asked to gloss proper nouns with their original form on first
// mention, e.g. "Munich(München)". Models repeat glosses or gloss words with
// themselves; Normalize strips those without touching anything else.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nestedGloss = regexp.MustCompile(`\(([^()]+)\(([^()]+)\)\)`)
	glossSpan   = regexp.MustCompile(`\(([^()]*)\)`)
)

// Normalize applies the gloss rules until the text stops changing, so
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return text
	}
	for {
		next := dropRepeatedGlosses(collapseAdjacent(collapseNested(text)))
		if next == text {
			return next
		}
		text = next
	}
}

// collapseNested rewrites "(X(X))" to "(X)".
func collapseNested(text string) string {
	return nestedGloss.ReplaceAllStringFunc(text, func(match string) string {
		parts := nestedGloss.FindStringSubmatch(match)
		outer, inner := strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
		if outer == "" || !strings.EqualFold(outer, inner) {
			return match
		}
		return "(" + outer + ")"
	})
}

// collapseAdjacent rewrites "X(X)" and "X (X)" to "X" when the text right before
// the parenthesis repeats the gloss.
func collapseAdjacent(text string) string {
	spans := glossSpan.FindAllStringSubmatchIndex(text, -1)
	if len(spans) == 0 {
		return text
	}

	var out strings.Builder
	last := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		inner := strings.TrimSpace(text[span[2]:span[3]])

		out.WriteString(text[last:start])
		last = end

		kept := out.String()
		head := strings.TrimRight(kept, " \t")
		if inner != "" && endsWithTerm(head, inner) {
			out.Reset()
			out.WriteString(head)
			continue
		}
		out.WriteString(text[start:end])
	}
	out.WriteString(text[last:])
	return out.String()
}

// dropRepeatedGlosses keeps the first occurrence of every parenthetical term and
// deletes the later ones together with the whitespace in front of them.
func dropRepeatedGlosses(text string) string {
	spans := glossSpan.FindAllStringSubmatchIndex(text, -1)
	if len(spans) == 0 {
		return text
	}

	seen := make(map[string]struct{}, len(spans))
	var out strings.Builder
	last := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		key := termKey(text[span[2]:span[3]])

		out.WriteString(text[last:start])
		last = end

		if key == "" {
			out.WriteString(text[start:end])
			continue
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			out.WriteString(text[start:end])
			continue
		}

		head := strings.TrimRight(out.String(), " \t")
		out.Reset()
		out.WriteString(head)
	}
	out.WriteString(text[last:])
	return out.String()
}

// endsWithTerm reports whether text ends with term as a whole word or phrase,
// ignoring case.
func endsWithTerm(text, term string) bool {
	n := utf8.RuneCountInString(term)
	runes := []rune(text)
	if len(runes) < n {
		return false
	}
	tail := string(runes[len(runes)-n:])
	if !strings.EqualFold(tail, term) {
		return false
	}
	if len(runes) == n {
		return true
	}
	return !isNameRune(runes[len(runes)-n-1])
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) ||
		r == '-' || r == '\'' || r == '’' || r == '_'
}

func termKey(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}
