package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-formfill/internal/logger"
)

// ErrMalformedLocation reports a location string that cannot be decomposed.
var ErrMalformedLocation = errors.New("normalize: malformed location")

var (
	parentheticalPattern = regexp.MustCompile(`\(.*?\)`)
	leadingDigitsPattern = regexp.MustCompile(`^\d+`)
)

// Location is a location code decomposed into its numeric part and the
// descriptive street text that follows it.
type Location struct {
	Number string
	Text   string
}

// String joins the number and descriptive text with a single space, skipping
// empty parts.
func (l Location) String() string {
	switch {
	case l.Number == "":
		return l.Text
	case l.Text == "":
		return l.Number
	default:
		return l.Number + " " + l.Text
	}
}

// ParseLocation decomposes raw using the text after its first decimal point.
// Parenthesised spans are removed, a leading run of digits becomes Number and
// the remainder is formatted with FormatStreetName. Without a decimal point
// the whole string is descriptive text.
func ParseLocation(raw string) (Location, error) {
	if !utf8.ValidString(raw) {
		return Location{}, fmt.Errorf("%w: %q is not valid UTF-8", ErrMalformedLocation, raw)
	}
	value := norm.NFC.String(raw)

	dot := strings.Index(value, ".")
	if dot < 0 {
		return Location{Text: FormatStreetName(value)}, nil
	}

	cleaned := parentheticalPattern.ReplaceAllString(value[dot+1:], "")
	number := leadingDigitsPattern.FindString(cleaned)
	if number == "" {
		return Location{Text: FormatStreetName(cleaned)}, nil
	}
	rest := strings.TrimSpace(cleaned[len(number):])
	return Location{Number: number, Text: FormatStreetName(rest)}, nil
}

// ExtractAndFormatLocation is the fail-soft form of ParseLocation. When the
// input cannot be parsed the failure is logged and the trimmed original is
// returned as Number with empty Text.
func ExtractAndFormatLocation(raw string) Location {
	loc, err := ParseLocation(raw)
	if err != nil {
		logger.Warn("location parse failed, using raw value", "raw", raw, "err", err)
		return Location{Number: strings.TrimSpace(raw)}
	}
	return loc
}

// FormatLocationShort takes the text strictly between the first "." and the
// first "(" after it, then title-cases each word. No abbreviation table is
// applied. Without a "." the text starts at the beginning; without a "(" it
// runs to the end.
func FormatLocationShort(text string) string {
	value := norm.NFC.String(text)
	start := 0
	if dot := strings.Index(value, "."); dot >= 0 {
		start = dot + 1
	}
	segment := value[start:]
	if paren := strings.Index(segment, "("); paren >= 0 {
		segment = segment[:paren]
	}
	return titleWords(strings.TrimSpace(segment))
}
