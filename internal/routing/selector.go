// README: Route selector — reduces scored candidates to one winner.
package routing

// SelectBest picks the candidate with the lowest total penalty; among tied
// penalties (notably all-zero) the lowest raw pre-penalty duration wins.
// A remaining tie keeps the earlier candidate. Returns false for an empty set.
func SelectBest(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		switch {
		case penaltyOf(c) < penaltyOf(best):
			best = c
		case penaltyOf(c) == penaltyOf(best) && c.RawDurationMillis < best.RawDurationMillis:
			best = c
		}
	}
	return best, true
}

func penaltyOf(c Candidate) float64 {
	if c.Penalty == nil {
		return 0
	}
	return c.Penalty.TotalPenalty
}
