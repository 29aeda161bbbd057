package bindb

import (
	"context"
	"strings"
)

// Resolver maps a BIN prefix to a BrandProfile. Registry hits win, most
// specific prefix first; static numbering rules cover the rest, so
// resolution works even when the registry never loaded.
type Resolver struct {
	reg *Registry
}

// NewResolver builds a resolver over reg; reg may be nil for
// static-rules-only resolution.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve returns the profile for a digit-only BIN prefix. The registry
// is consulted with the full prefix, then its leading 4, 2 and 1
// digits; the first hit wins.
func (r *Resolver) Resolve(ctx context.Context, bin string) BrandProfile {
	if r.reg != nil {
		for _, n := range []int{len(bin), 4, 2, 1} {
			if n <= 0 || n > len(bin) {
				continue
			}
			if p, ok := r.reg.Lookup(ctx, bin[:n]); ok {
				return p
			}
		}
	}
	return ResolveStatic(bin)
}

// ResolveStatic applies the classic numbering-range rules.
func ResolveStatic(bin string) BrandProfile {
	switch {
	case strings.HasPrefix(bin, "4"):
		return staticProfile("Visa", 16, 3, "US")
	case inRange(bin, "51", "55") || inRange(bin, "22", "27"):
		return staticProfile("Mastercard", 16, 3, "US")
	case strings.HasPrefix(bin, "34") || strings.HasPrefix(bin, "37"):
		return staticProfile("American Express", 15, 4, "US")
	case strings.HasPrefix(bin, "6011") || inRange(bin, "622", "629") ||
		inRange(bin, "644", "649") || strings.HasPrefix(bin, "65"):
		return staticProfile("Discover", 16, 3, "US")
	case strings.HasPrefix(bin, "36") || strings.HasPrefix(bin, "38"):
		return staticProfile("Diners Club", 14, 3, "US")
	case inRange(bin, "352", "358"):
		return staticProfile("JCB", 16, 3, "JP")
	case strings.HasPrefix(bin, "62"):
		return staticProfile("UnionPay", 16, 3, "CN")
	default:
		return staticProfile("Unknown", 16, 3, "US")
	}
}

func staticProfile(brand string, length, cvvLength int, country string) BrandProfile {
	return BrandProfile{
		Brand:     brand,
		Length:    length,
		CVVLength: cvvLength,
		Bank:      "Unknown",
		Country:   country,
		Type:      "credit",
	}
}

// inRange reports whether bin's leading digits fall in [lo, hi]; lo and
// hi share a length, and a bin shorter than that never matches.
func inRange(bin, lo, hi string) bool {
	n := len(lo)
	if len(bin) < n {
		return false
	}
	p := bin[:n]
	return p >= lo && p <= hi
}
