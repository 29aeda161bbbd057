// Package markov generates account-segment digits biased by a fixed
// first-order transition table, so bulk test numbers do not look like
// raw uniform noise.
package markov

import (
	"math/rand"

	"github.com/cardhelper/cardforge/internal/weighted"
)

// transitions[prev][next] is the probability of next following prev.
// Each row sums to 1.
var transitions = [10][10]float64{
	{0.08, 0.11, 0.12, 0.10, 0.09, 0.11, 0.08, 0.10, 0.11, 0.10},
	{0.10, 0.08, 0.11, 0.12, 0.09, 0.10, 0.11, 0.09, 0.10, 0.10},
	{0.11, 0.10, 0.08, 0.11, 0.12, 0.09, 0.10, 0.11, 0.09, 0.09},
	{0.09, 0.11, 0.10, 0.08, 0.11, 0.12, 0.09, 0.10, 0.11, 0.09},
	{0.10, 0.09, 0.11, 0.10, 0.08, 0.11, 0.12, 0.09, 0.10, 0.10},
	{0.11, 0.10, 0.09, 0.11, 0.10, 0.08, 0.11, 0.12, 0.09, 0.09},
	{0.09, 0.11, 0.10, 0.09, 0.11, 0.10, 0.08, 0.11, 0.12, 0.09},
	{0.10, 0.09, 0.11, 0.10, 0.09, 0.11, 0.10, 0.08, 0.11, 0.11},
	{0.11, 0.10, 0.09, 0.11, 0.10, 0.09, 0.11, 0.10, 0.08, 0.11},
	{0.10, 0.11, 0.10, 0.09, 0.11, 0.10, 0.09, 0.11, 0.10, 0.09},
}

// independent is the context-free distribution behind IndependentDigit.
var independent = [10]float64{0.09, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.10, 0.11}

// defaultRow is used when the previous digit cannot be determined.
const defaultRow = 5

// Model draws digits from the transition table. Roll supplies uniform
// values in [0,1); when nil the shared math/rand source is used, which
// is safe for concurrent callers.
type Model struct {
	Roll func() float64
}

func New() *Model {
	return &Model{}
}

func (m *Model) roll() float64 {
	if m.Roll != nil {
		return m.Roll()
	}
	return rand.Float64()
}

// NextDigit returns the next digit given the digits generated so far.
// The previous digit is the last character of context, or of seed when
// context is empty; anything out of range selects the default row.
func (m *Model) NextDigit(context, seed string) int {
	prev := lastDigit(context)
	if prev < 0 {
		prev = lastDigit(seed)
	}
	if prev < 0 || prev > 9 {
		prev = defaultRow
	}
	return pickRow(transitions[prev][:], m.roll())
}

// IndependentDigit draws a single digit with no context.
func (m *Model) IndependentDigit() int {
	return pickRow(independent[:], m.roll())
}

func pickRow(row []float64, roll float64) int {
	pairs := make([]weighted.Pair[int], len(row))
	for i, w := range row {
		pairs[i] = weighted.Pair[int]{Value: i, Weight: w}
	}
	return weighted.Pick(pairs, roll)
}

func lastDigit(s string) int {
	if s == "" {
		return -1
	}
	c := s[len(s)-1]
	if c < '0' || c > '9' {
		return -1
	}
	return int(c - '0')
}
