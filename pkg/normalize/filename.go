package normalize

import (
	"strings"
	"unicode"
)

var invalidFilenameChars = strings.NewReplacer(
	"<", "", ">", "", ":", "", `"`, "",
	"/", "", `\`, "", "|", "", "?", "", "*", "",
)

// CleanFilename strips characters that are invalid in Windows filenames,
// collapses whitespace and joins the remaining words with underscores.
// Applying it twice gives the same result as applying it once.
func CleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\t", " ")
	name = invalidFilenameChars.Replace(name)
	return strings.Join(strings.FieldsFunc(name, isSeparator), "_")
}

// isSeparator is unicode.IsSpace plus the information separators
// U+001C..U+001F, which also count as whitespace when splitting words.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
