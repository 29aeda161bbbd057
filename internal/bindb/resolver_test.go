package bindb

import (
	"context"
	"testing"
)

func TestResolveStatic_Rules(t *testing.T) {
	cases := []struct {
		bin       string
		brand     string
		length    int
		cvvLength int
		country   string
	}{
		{"4111", "Visa", 16, 3, "US"},
		{"4", "Visa", 16, 3, "US"},
		{"5234", "Mastercard", 16, 3, "US"},
		{"5534", "Mastercard", 16, 3, "US"},
		{"2345", "Mastercard", 16, 3, "US"},
		{"2720", "Mastercard", 16, 3, "US"},
		{"34", "American Express", 15, 4, "US"},
		{"371449", "American Express", 15, 4, "US"},
		{"6011", "Discover", 16, 3, "US"},
		{"6221", "Discover", 16, 3, "US"},
		{"6442", "Discover", 16, 3, "US"},
		{"65", "Discover", 16, 3, "US"},
		{"36", "Diners Club", 14, 3, "US"},
		{"3800", "Diners Club", 14, 3, "US"},
		{"3528", "JCB", 16, 3, "JP"},
		{"3580", "JCB", 16, 3, "JP"},
		{"62", "UnionPay", 16, 3, "CN"},
		{"6200", "UnionPay", 16, 3, "CN"},
		{"56", "Unknown", 16, 3, "US"},
		{"9999", "Unknown", 16, 3, "US"},
		{"1", "Unknown", 16, 3, "US"},
	}
	for _, c := range cases {
		p := ResolveStatic(c.bin)
		if p.Brand != c.brand || p.Length != c.length || p.CVVLength != c.cvvLength || p.Country != c.country {
			t.Fatalf("ResolveStatic(%q) = %+v want %s/%d/%d/%s",
				c.bin, p, c.brand, c.length, c.cvvLength, c.country)
		}
		if p.Bank != "Unknown" || p.Type != "credit" {
			t.Fatalf("ResolveStatic(%q) defaults = %+v", c.bin, p)
		}
	}
}

func TestResolve_RegistryPrecedence(t *testing.T) {
	reg := NewStaticRegistry(map[string]BrandProfile{
		"532959": {Brand: "Mastercard", Length: 16, CVVLength: 3, Bank: "Jyske Bank", Country: "DK"},
		"5329":   {Brand: "Mastercard", Length: 16, Bank: "Four Digit Bank"},
		"53":     {Brand: "Mastercard", Length: 16, Bank: "Two Digit Bank"},
		"5":      {Brand: "Mastercard", Length: 16, Bank: "One Digit Bank"},
	})
	r := NewResolver(reg)
	ctx := context.Background()

	if p := r.Resolve(ctx, "532959"); p.Bank != "Jyske Bank" {
		t.Fatalf("exact match lost: %+v", p)
	}
	if p := r.Resolve(ctx, "532958"); p.Bank != "Four Digit Bank" {
		t.Fatalf("4-digit match lost: %+v", p)
	}
	if p := r.Resolve(ctx, "531111"); p.Bank != "Two Digit Bank" {
		t.Fatalf("2-digit match lost: %+v", p)
	}
	if p := r.Resolve(ctx, "541111"); p.Bank != "One Digit Bank" {
		t.Fatalf("1-digit match lost: %+v", p)
	}
}

func TestResolve_FallsBackToStatic(t *testing.T) {
	reg := NewStaticRegistry(map[string]BrandProfile{
		"532959": {Brand: "Mastercard", Length: 16},
	})
	r := NewResolver(reg)

	p := r.Resolve(context.Background(), "4111")
	if p.Brand != "Visa" || p.Length != 16 {
		t.Fatalf("static fallback got %+v", p)
	}
}

func TestResolve_NilRegistry(t *testing.T) {
	r := NewResolver(nil)
	p := r.Resolve(context.Background(), "371449")
	if p.Brand != "American Express" || p.CVVLength != 4 {
		t.Fatalf("nil-registry resolve got %+v", p)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	reg := NewStaticRegistry(map[string]BrandProfile{
		"532959": {Brand: "Mastercard", Length: 16, Bank: "Jyske Bank"},
	})
	r := NewResolver(reg)
	ctx := context.Background()

	first := r.Resolve(ctx, "532959")
	for i := 0; i < 10; i++ {
		if got := r.Resolve(ctx, "532959"); got != first {
			t.Fatalf("Resolve not deterministic: %+v vs %+v", got, first)
		}
	}
}
