// Package cvv derives display-only verification codes for synthesized
// test cards. The derivation is deterministic: the same number and
// expiry always yield the same code. NOT a real CVV algorithm.
package cvv

import "strconv"

// Classic LCG constants; the seed is folded through one step and the
// result shifted into the 3- or 4-digit band.
const (
	lcgMul = 9301
	lcgAdd = 49297
	lcgMod = 233280
)

// Derive computes a CVV from the full card number and the MMYY expiry.
// width is 3 or 4; anything else falls back to 3.
func Derive(cardNumber, mmyy string, width int) string {
	seed := tailInt(cardNumber, 4) + digitsInt(mmyy)
	pseudo := (seed*lcgMul + lcgAdd) % lcgMod
	return derive(pseudo, normalizeWidth(width))
}

func derive(pseudo, width int) string {
	code := format(pseudo, width)
	if !weak(code) {
		return code
	}
	// One corrective pass; the shifted value is accepted as is.
	offset := 123
	if width == 4 {
		offset = 1234
	}
	return format(pseudo+offset, width)
}

func format(pseudo, width int) string {
	if width == 4 {
		return strconv.Itoa(pseudo%9000 + 1000)
	}
	return strconv.Itoa(pseudo%900 + 100)
}

func normalizeWidth(width int) int {
	if width == 4 {
		return 4
	}
	return 3
}

// weak reports degenerate codes: all digits identical, or, for 3-digit
// codes, a straight ascending or descending run.
func weak(code string) bool {
	same := true
	for i := 1; i < len(code); i++ {
		if code[i] != code[0] {
			same = false
			break
		}
	}
	if same {
		return true
	}
	if len(code) == 3 {
		a, b, c := int(code[0]), int(code[1]), int(code[2])
		if b-a == 1 && c-b == 1 {
			return true
		}
		if a-b == 1 && b-c == 1 {
			return true
		}
	}
	return false
}

func tailInt(s string, n int) int {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	v, _ := strconv.Atoi(s)
	return v
}

func digitsInt(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			v = v*10 + int(s[i]-'0')
		}
	}
	return v
}
