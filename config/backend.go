package config

import (
	"strings"
	"time"
)

// BackendConfig contains configuration for the library backend REST API.
// The backend is the sole authority over credential validity; the gateway
// consumes its /auth endpoints and never inspects credential contents.
type BackendConfig struct {
	// BaseURL is the origin of the library backend API.
	BaseURL string `env:"LIBRARY_API_URL" envDefault:"http://127.0.0.1:8000/api"`

	// Timeout bounds every backend call made by the gateway. A hung
	// verification call otherwise leaves a guard waiting indefinitely.
	Timeout time.Duration `env:"LIBRARY_API_TIMEOUT" envDefault:"5s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(b.BaseURL, "/")
	if b.Timeout <= 0 {
		b.Timeout = 5 * time.Second
	}
}
