package expiry

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cardhelper/cardforge/internal/weighted"
)

// Date is a card expiry month and full year.
type Date struct {
	Month int
	Year  int
}

// Year offsets from the current year, weighted the way expiries cluster
// on real cards: most sit two to four years out.
var yearOffsets = []weighted.Pair[int]{
	{Value: 2, Weight: 0.15},
	{Value: 3, Weight: 0.40},
	{Value: 4, Weight: 0.25},
	{Value: 5, Weight: 0.15},
	{Value: 6, Weight: 0.05},
}

// commonMonths are picked 80% of the time; the rest is uniform 1..12.
var commonMonths = []int{3, 5, 6, 9, 11, 12}

// Source supplies the randomness behind Generate so tests can pin it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }
func (defaultSource) Intn(n int) int   { return rand.Intn(n) }

// Generate picks an expiry strictly after now: a weighted year offset,
// then a month. If the pick somehow lands on or before the current
// month, the year advances by one.
func Generate(now time.Time, src Source) Date {
	if src == nil {
		src = defaultSource{}
	}
	offset := weighted.Pick(yearOffsets, src.Float64())
	var month int
	if src.Float64() < 0.8 {
		month = commonMonths[src.Intn(len(commonMonths))]
	} else {
		month = 1 + src.Intn(12)
	}
	d := Date{Month: month, Year: now.Year() + offset}
	if !d.After(now) {
		d.Year++
	}
	return d
}

// After reports whether the expiry is strictly later than now's
// (month, year).
func (d Date) After(now time.Time) bool {
	if d.Year != now.Year() {
		return d.Year > now.Year()
	}
	return d.Month > int(now.Month())
}

// CardFace returns MM/YY for display and form filling.
func (d Date) CardFace() string {
	return fmt.Sprintf("%02d/%02d", d.Month, d.Year%100)
}

// MMYY returns the four-digit MMYY form used for CVV derivation.
func (d Date) MMYY() string {
	return fmt.Sprintf("%02d%02d", d.Month, d.Year%100)
}

// YYMM returns the ISO 8583 DE14 form.
func (d Date) YYMM() string {
	return fmt.Sprintf("%02d%02d", d.Year%100, d.Month)
}

// MonthString returns the zero-padded two-digit month.
func (d Date) MonthString() string {
	return fmt.Sprintf("%02d", d.Month)
}

// YearString returns the last two digits of the year, zero-padded.
func (d Date) YearString() string {
	return fmt.Sprintf("%02d", d.Year%100)
}

// ValidateYYMM 校验到期格式为 YYMM，且月份在 01..12。
func ValidateYYMM(yymm string) error {
	if len(yymm) != 4 {
		return fmt.Errorf("expiry must be YYMM (4 digits)")
	}
	for i := 0; i < 4; i++ {
		if yymm[i] < '0' || yymm[i] > '9' {
			return fmt.Errorf("expiry must be digits: YYMM")
		}
	}
	mm := int(yymm[2]-'0')*10 + int(yymm[3]-'0')
	if mm < 1 || mm > 12 {
		return fmt.Errorf("expiry month must be 01..12")
	}
	return nil
}
