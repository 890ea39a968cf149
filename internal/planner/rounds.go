package planner

// Unrestricted is returned by MaxRounds when the regulations put no limit on
// the number of rounds.
const Unrestricted = 0

// MaxRounds returns the maximum number of rounds the regulations allow for a
// category whose first round has the given number of competitors.
func MaxRounds(firstRound int) int {
	switch {
	case firstRound <= 7:
		return 1
	case firstRound <= 15:
		return 2
	case firstRound <= 99:
		return 3
	default:
		return Unrestricted
	}
}

// ValidateRounds clamps a proposed round count to MaxRounds. The message
// describes the limit whenever one applies, even if proposed is within it;
// callers surface it when the returned count differs from proposed and are
// responsible for storing the clamped value.
func ValidateRounds(firstRound, proposed int) (int, string) {
	switch MaxRounds(firstRound) {
	case 1:
		return 1, "7 or fewer competitors can only have 1 round"
	case 2:
		return min(2, proposed), "15 or fewer competitors can have maximum 2 rounds"
	case 3:
		return min(3, proposed), "99 or fewer competitors can have maximum 3 rounds"
	}
	return proposed, ""
}
