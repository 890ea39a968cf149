package planner

import "github.com/abrezinsky/cubeplan/internal/catalog"

const (
	// MinStations is the floor applied by StationCount.
	MinStations = 6
	// competitorsPerStationPair: two stations for every 20 competitors.
	competitorsPerStationPair = 20
)

// StationCount returns the number of solving stations for a competition:
// two per 20 competitors, at least MinStations, always even.
func StationCount(total int) int {
	base := ceilDiv(total, competitorsPerStationPair) * 2
	if base < MinStations {
		return MinStations
	}
	return ceilDiv(base, 2) * 2
}

// GroupsAndSize splits a round's field into groups. Single-group categories
// always run as one group; otherwise a group seats three competitors per
// station for small categories and two for the rest.
func GroupsAndSize(cat catalog.Category, competitors, stations int) (groups, size int) {
	if cat.SingleGroup {
		return 1, competitors
	}
	if competitors <= 0 {
		return 0, 0
	}

	maxPerGroup := stations * 2
	if cat.Small {
		maxPerGroup = stations * 3
	}
	groups = ceilDiv(competitors, maxPerGroup)
	size = ceilDiv(competitors, groups)
	return groups, size
}

// InitialCompetitors estimates round-one entrants for a category: the
// registration share of total, rounded up to a multiple of 5.
func InitialCompetitors(cat catalog.Category, total int) int {
	// basis points: 97.49% -> 9749 / 10000
	return ceilDiv(total*cat.RegistrationBasisPoints(), 10000*5) * 5
}

// RoundUpTo5 rounds n up to the next multiple of 5.
func RoundUpTo5(n int) int {
	return ceilDiv(n, 5) * 5
}

// RoundUpTo15 rounds minutes up to the next multiple of 15.
func RoundUpTo15(minutes int) int {
	return ceilDiv(minutes, 15) * 15
}

// ceilDiv is integer division rounding toward positive infinity. b must be
// positive.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b > 0 {
		q++
	}
	return q
}
