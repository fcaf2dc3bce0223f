package validate

import (
	"strings"
	"unicode/utf8"
)

// MinTextLength is the threshold the analysis service enforces server-side;
// trimmed input must be strictly longer than this to be worth submitting.
const MinTextLength = 50

// ValidText reports whether pasted text is long enough to analyze.
func ValidText(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > MinTextLength
}

// Remaining reports how many more characters the trimmed input needs before
// ValidText accepts it, for progressive feedback while typing. Zero once the
// input is long enough.
func Remaining(text string) int {
	length := utf8.RuneCountInString(strings.TrimSpace(text))
	if length > MinTextLength {
		return 0
	}
	return MinTextLength + 1 - length
}
