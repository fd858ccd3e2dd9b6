package maps

// State is the traversal phase. Transitions run strictly forward; Failed is
// absorbing and reachable only from Searched and Scrolled.
type State int

const (
	StateInit State = iota
	StateSearched
	StateScrolled
	StateExtracted
	StateDeepScraped
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateSearched:
		return "SEARCHED"
	case StateScrolled:
		return "SCROLLED"
	case StateExtracted:
		return "EXTRACTED"
	case StateDeepScraped:
		return "DEEP_SCRAPED"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
