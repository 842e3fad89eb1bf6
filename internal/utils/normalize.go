package utils

// CreateRankList returns the ranks 1..count for an already ordered result
// list.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

// ClampLimit returns limit bounded to [1, max], using fallback when limit is
// not positive.
func ClampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		limit = fallback
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
