// Package weighted implements the cumulative-probability pick used for
// both digit sampling and expiry-year sampling.
package weighted

// Pair couples a candidate value with its selection weight.
type Pair[T any] struct {
	Value  T
	Weight float64
}

// Pick walks cumulative weights in order and returns the value whose
// interval contains roll. Weights are expected to sum to 1 and roll to
// lie in [0,1); if rounding leaves roll above every cumulative sum, the
// last value wins.
func Pick[T any](pairs []Pair[T], roll float64) T {
	cum := 0.0
	for _, p := range pairs {
		cum += p.Weight
		if roll < cum {
			return p.Value
		}
	}
	return pairs[len(pairs)-1].Value
}
