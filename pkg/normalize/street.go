package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// streetAbbreviations maps the uppercased form of a word to its canonical
// display casing.
var streetAbbreviations = map[string]string{
	"RD":   "Rd",
	"ST":   "St",
	"AVE":  "Ave",
	"BLVD": "Blvd",
	"LN":   "Ln",
	"DR":   "Dr",
	"CT":   "Ct",
	"PL":   "Pl",
	"TER":  "Ter",
	"PKY":  "Pky",
	"CIR":  "Cir",
	"HWY":  "Hwy",
	"WAY":  "Way",
}

// FormatStreetName capitalises each whitespace separated word, replacing
// known street suffixes with their abbreviation casing. Empty input yields
// an empty string.
func FormatStreetName(text string) string {
	words := strings.Fields(norm.NFC.String(text))
	for i, word := range words {
		if canonical, ok := streetAbbreviations[strings.ToUpper(word)]; ok {
			words[i] = canonical
			continue
		}
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune and lower-cases the remainder.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}

func titleWords(text string) string {
	words := strings.Fields(strings.ToLower(text))
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}
