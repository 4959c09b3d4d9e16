package togyzkumalak

// historyTracker counts how many times each position has been reached,
// keyed by the canonical position string. It backs the claim-based
// threefold-repetition draw: the tracker only answers queries, it never
// declares a draw on its own.
type historyTracker struct {
	counts map[string]int
	seen   []string
}

func newHistoryTracker() *historyTracker {
	return &historyTracker{counts: make(map[string]int)}
}

func (that *historyTracker) record(position string) {
	that.counts[position]++
	that.seen = append(that.seen, position)
}

func (that *historyTracker) occurrences(position string) int {
	return that.counts[position]
}

// positions returns the recorded positions in the order they were
// reached, for persistence.
func (that *historyTracker) positions() []string {
	if len(that.seen) == 0 {
		return nil
	}
	out := make([]string, len(that.seen))
	copy(out, that.seen)
	return out
}
