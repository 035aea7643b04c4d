package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

const maxFilenameRunes = 120

// SanitizeFilename turns a lesson title into a safe file name. It removes
// characters that are invalid in filenames or that markdown tools treat
// specially (slashes, colons, quotes, hashtags, brackets), and keeps umlauts
// and other letters as they are.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	// Cut on a rune boundary, leaving room for an extension.
	if utf8.RuneCountInString(filename) > maxFilenameRunes {
		filename = strings.TrimSpace(string([]rune(filename)[:maxFilenameRunes]))
	}

	if filename == "" {
		filename = "Untitled"
	}
	return filename
}
