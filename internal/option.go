package internal

// Option configures the sigil application before Run starts it.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig supplies the loaded configuration. Run and RunMCP refuse
// to start without one.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
