package fields

import (
	"fmt"
	"strings"
)

// Mode selects the template variant.
type Mode string

const (
	// ModeCombined writes location and intersection into the Curb Ramp
	// Location cell.
	ModeCombined Mode = "combined"
	// ModeSplit fills a separate Intersection cell with a blank return
	// position line.
	ModeSplit Mode = "split"
	// ModePlaceholder replaces the "CR location" and "I location"
	// placeholder paragraphs.
	ModePlaceholder Mode = "placeholder"
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeCombined

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{ModeCombined, ModeSplit, ModePlaceholder}
}

// ParseMode resolves a case-insensitive mode name; empty means DefaultMode.
func ParseMode(raw string) (Mode, error) {
	value := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return DefaultMode, nil
	}
	for _, mode := range Modes() {
		if value == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("fields: unknown mode %q", raw)
}

func (m Mode) String() string { return string(m) }
