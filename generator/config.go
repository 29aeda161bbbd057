package generator

// Config is a configuration for the cardforge application.
type Config struct {
	HTTPAddr string
	// RegistryURL points at the JSON BIN registry ({"bins": {...}});
	// empty means static numbering rules only.
	RegistryURL string
	// DefaultBIN is used when a request does not name a BIN prefix.
	DefaultBIN string
	// MaxBatch caps the per-request quantity.
	MaxBatch int
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:   "localhost:9090",
		DefaultBIN: "532959",
		MaxBatch:   1000,
	}
}
