package expiry

import (
	"math/rand"
	"testing"
	"time"
)

func TestGenerate_StrictlyAfterNow(t *testing.T) {
	now := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)
	for seed := int64(0); seed < 200; seed++ {
		d := Generate(now, rand.New(rand.NewSource(seed)))
		if !d.After(now) {
			t.Fatalf("seed %d: expiry %02d/%d not after %v", seed, d.Month, d.Year, now)
		}
		if d.Month < 1 || d.Month > 12 {
			t.Fatalf("seed %d: month %d out of range", seed, d.Month)
		}
		if off := d.Year - now.Year(); off < 2 || off > 7 {
			t.Fatalf("seed %d: year offset %d out of range", seed, off)
		}
	}
}

type fixedSource struct {
	rolls []float64
	ints  []int
}

func (s *fixedSource) Float64() float64 {
	v := s.rolls[0]
	s.rolls = s.rolls[1:]
	return v
}

func (s *fixedSource) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func TestGenerate_WeightedPicks(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	// Year roll 0.10 lands in the first interval (offset 2); month roll
	// 0.5 takes the common-months path, index 0 -> March.
	d := Generate(now, &fixedSource{rolls: []float64{0.10, 0.5}, ints: []int{0}})
	if d.Year != 2028 || d.Month != 3 {
		t.Fatalf("got %02d/%d want 03/2028", d.Month, d.Year)
	}

	// Year roll 0.999 lands on the last offset (6); month roll 0.9
	// takes the uniform path, Intn 0 -> January.
	d = Generate(now, &fixedSource{rolls: []float64{0.999, 0.9}, ints: []int{0}})
	if d.Year != 2032 || d.Month != 1 {
		t.Fatalf("got %02d/%d want 01/2032", d.Month, d.Year)
	}
}

func TestDate_Formats(t *testing.T) {
	d := Date{Month: 3, Year: 2029}
	if got := d.CardFace(); got != "03/29" {
		t.Fatalf("CardFace got %s", got)
	}
	if got := d.MMYY(); got != "0329" {
		t.Fatalf("MMYY got %s", got)
	}
	if got := d.YYMM(); got != "2903" {
		t.Fatalf("YYMM got %s", got)
	}
	if d.MonthString() != "03" || d.YearString() != "29" {
		t.Fatalf("components got %s %s", d.MonthString(), d.YearString())
	}
}

func TestDate_After(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		d     Date
		after bool
	}{
		{Date{Month: 9, Year: 2026}, true},
		{Date{Month: 8, Year: 2026}, false},
		{Date{Month: 7, Year: 2026}, false},
		{Date{Month: 1, Year: 2027}, true},
		{Date{Month: 12, Year: 2025}, false},
	}
	for _, c := range cases {
		if got := c.d.After(now); got != c.after {
			t.Fatalf("After(%02d/%d) = %v want %v", c.d.Month, c.d.Year, got, c.after)
		}
	}
}

func TestValidateYYMM(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"3002", true}, {"9912", true}, {"0001", true},
		{"123", false}, {"12a4", false}, {"3013", false}, {"0000", false},
	}
	for _, c := range cases {
		err := ValidateYYMM(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("ValidateYYMM(%s) ok=%v got err=%v", c.in, c.ok, err)
		}
	}
}
