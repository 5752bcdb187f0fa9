package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnparseable marks a model response that does not follow the labeled format.
var ErrUnparseable = errors.New("unparseable model response")

var (
	titleLabel    = labelPattern("Title")
	contentLabel  = labelPattern("Content", "Summary")
	categoryLabel = labelPattern("Category")
)

// labelPattern matches "Name:" with optional markdown bold around the name.
func labelPattern(names ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(names, "|") + `)[ \t]*\*{0,2}[ \t]*:`)
}

// extractFields splits text on labels that must appear in the given order. The
// value of each label runs until the next label; the last one takes the rest.
func extractFields(text string, labels ...*regexp.Regexp) ([]string, error) {
	bounds := make([][2]int, len(labels))
	pos := 0
	for i, re := range labels {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			return nil, fmt.Errorf("%w: missing label %d", ErrUnparseable, i+1)
		}
		bounds[i] = [2]int{pos + loc[0], pos + loc[1]}
		pos += loc[1]
	}

	values := make([]string, len(labels))
	for i := range labels {
		end := len(text)
		if i+1 < len(labels) {
			end = bounds[i+1][0]
		}
		value := cleanValue(text[bounds[i][1]:end])
		if value == "" {
			return nil, fmt.Errorf("%w: empty value for label %d", ErrUnparseable, i+1)
		}
		values[i] = value
	}
	return values, nil
}

// splitOptional cuts value at an optional label and returns the text before and
// after it. ok is false when the label is absent.
func splitOptional(value string, label *regexp.Regexp) (before, after string, ok bool) {
	loc := label.FindStringIndex(value)
	if loc == nil {
		return value, "", false
	}
	return cleanValue(value[:loc[0]]), cleanValue(value[loc[1]:]), true
}

func cleanValue(v string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "*"))
}
