package ttlmemo

import "time"

// Entry is one cached result. Key is the encoded argument tuple.
type Entry struct {
	Key      string
	Value    any
	StoredAt time.Time
}

// Age reports how long the entry has been stored as of now.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

// State is what a lookup found for a key.
type State int

const (
	Missing State = iota
	Expired
	Fresh
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Expired:
		return "expired"
	default:
		return "missing"
	}
}
