package goquery

import "strings"

// wordsPerMinute is the reading-speed constant behind ReadingTime.
const wordsPerMinute = 200

// countWords counts whitespace-delimited non-empty tokens.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// readingTime estimates reading minutes from a word count, floored at one
// minute regardless of length.
func readingTime(wordCount int) int {
	minutes := wordCount / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
