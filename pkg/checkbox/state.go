package checkbox

// State tracks a marking run: Unopened → Opened → {Scanned, Marked}* → Saved
// → Closed, or ClosedWithError when any step failed.
type State int

const (
	StateUnopened State = iota
	StateOpened
	StateScanned
	StateMarked
	StateSaved
	StateClosed
	StateClosedWithError
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpened:
		return "opened"
	case StateScanned:
		return "scanned"
	case StateMarked:
		return "marked"
	case StateSaved:
		return "saved"
	case StateClosed:
		return "closed"
	case StateClosedWithError:
		return "closed_with_error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateClosedWithError
}
