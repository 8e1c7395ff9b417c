package telemetry

// Config holds configuration for the tracer
type Config struct {
	ServiceName    string
	ServiceVersion string

	// Endpoint is the OTLP/HTTP collector, host:port. Tracing is off when
	// it is empty.
	Endpoint string

	// Insecure sends spans over plain HTTP.
	Insecure bool

	// SampleRate is the fraction of traces to sample (0.0 to 1.0).
	SampleRate float64
}

// DefaultConfig returns tracing disabled, sampling everything once enabled.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "gbms",
		ServiceVersion: "dev",
		SampleRate:     1.0,
	}
}

// Enabled reports whether spans are exported.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}
