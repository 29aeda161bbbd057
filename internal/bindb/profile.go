// Package bindb resolves BIN prefixes to brand profiles: a remote JSON
// registry first, static numbering rules as the fallback.
package bindb

// BrandProfile describes a card numbering family resolved from a BIN
// prefix. Profiles are immutable once resolved.
type BrandProfile struct {
	Brand     string `json:"brand"`
	Length    int    `json:"length"`
	CVVLength int    `json:"cvvLength"`
	Bank      string `json:"bank"`
	Country   string `json:"country"`
	Type      string `json:"type"`
}

// registryDocument is the wire shape of the registry:
// {"bins": {"<prefix>": {...}}} with prefixes of 1..9 digits.
type registryDocument struct {
	Bins map[string]BrandProfile `json:"bins"`
}

// withDefaults fills the fields a registry entry may omit.
func withDefaults(p BrandProfile) BrandProfile {
	if p.Brand == "" {
		p.Brand = "Unknown"
	}
	if p.Length == 0 {
		p.Length = 16
	}
	if p.CVVLength == 0 {
		p.CVVLength = 3
	}
	if p.Bank == "" {
		p.Bank = "Unknown"
	}
	if p.Country == "" {
		p.Country = "US"
	}
	if p.Type == "" {
		p.Type = "credit"
	}
	return p
}
