package compare

// Config holds comparison settings.
type Config struct {
	Verbose bool
	Workers int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default comparison settings: serial, not verbose.
func DefaultConfig() Config {
	return Config{Workers: 1}
}

// WithVerbose enables collection of individual differing entries.
func WithVerbose() Option {
	return func(cfg *Config) {
		cfg.Verbose = true
	}
}

// WithWorkers sets the number of parallel accumulation workers.
// Values below 2 keep the comparison serial.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
