package weighted

import "testing"

func TestPick(t *testing.T) {
	pairs := []Pair[string]{
		{Value: "a", Weight: 0.2},
		{Value: "b", Weight: 0.5},
		{Value: "c", Weight: 0.3},
	}
	cases := []struct {
		roll float64
		want string
	}{
		{0.0, "a"},
		{0.19, "a"},
		{0.2, "b"},
		{0.69, "b"},
		{0.7, "c"},
		{0.99, "c"},
	}
	for _, c := range cases {
		if got := Pick(pairs, c.roll); got != c.want {
			t.Fatalf("Pick(%v) = %q want %q", c.roll, got, c.want)
		}
	}
}

func TestPick_RoundingFallsBackToLast(t *testing.T) {
	pairs := []Pair[int]{
		{Value: 1, Weight: 0.5},
		{Value: 2, Weight: 0.4999999},
	}
	if got := Pick(pairs, 0.99999999); got != 2 {
		t.Fatalf("Pick above all cumulative sums = %d want 2", got)
	}
}
