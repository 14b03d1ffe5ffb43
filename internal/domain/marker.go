// internal/domain/marker.go
package domain

// BalanceResult is the outcome of checking a day's marker pairing.
type BalanceResult struct {
	Valid bool
	// FirstOffendingIndex is the index of the first entry that breaks the
	// pairing: an end with no open start, or the start left unclosed at the
	// end of the list. -1 when the list is balanced.
	FirstOffendingIndex int
}

// CheckBalance verifies that superset and circuit markers in an entry list
// pair up: every start is eventually closed by a matching end. The two kinds
// keep independent counters and may interleave freely. Plans authored today
// are not rejected on imbalance; callers treat the result as advisory.
func CheckBalance(entries []Entry) BalanceResult {
	counts := map[MarkerKind]int{}
	firstOpen := map[MarkerKind]int{}

	for i, e := range entries {
		if !e.IsMarker {
			continue
		}
		switch e.Kind {
		case SupersetStart, CircuitStart:
			if counts[e.Kind] == 0 {
				firstOpen[e.Kind] = i
			}
			counts[e.Kind]++
		case SupersetEnd:
			counts[SupersetStart]--
			if counts[SupersetStart] < 0 {
				return BalanceResult{Valid: false, FirstOffendingIndex: i}
			}
		case CircuitEnd:
			counts[CircuitStart]--
			if counts[CircuitStart] < 0 {
				return BalanceResult{Valid: false, FirstOffendingIndex: i}
			}
		}
	}

	for _, kind := range []MarkerKind{SupersetStart, CircuitStart} {
		if counts[kind] > 0 {
			return BalanceResult{Valid: false, FirstOffendingIndex: firstOpen[kind]}
		}
	}
	return BalanceResult{Valid: true, FirstOffendingIndex: -1}
}
