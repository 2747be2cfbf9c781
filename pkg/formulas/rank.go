package formulas

// DenseRanks assigns dense ranks to values that are already sorted
// descending: equal values share a rank and the next distinct value gets the
// immediately following integer, with no gaps. The input order is the
// ranking order; callers sort before calling.
func DenseRanks(sortedDesc []float64) []int {
	ranks := make([]int, len(sortedDesc))
	if len(sortedDesc) == 0 {
		return ranks
	}

	rank := 1
	ranks[0] = rank
	for i := 1; i < len(sortedDesc); i++ {
		if sortedDesc[i] != sortedDesc[i-1] {
			rank++
		}
		ranks[i] = rank
	}
	return ranks
}

// DescendingRank returns the 1-based position of value within the list
// sorted descending, first occurrence wins on ties. Returns 0 for an empty
// list.
func DescendingRank(values []float64, value float64) int {
	if len(values) == 0 {
		return 0
	}
	greater := 0
	for _, v := range values {
		if v > value {
			greater++
		}
	}
	return greater + 1
}
