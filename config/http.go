package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":3000"`

	// BaseURL is the base URL of the gateway (e.g., "https://library.example.com").
	// Used for generating absolute URLs in redirects when needed.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	// CookieDomain is the domain for the credential cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CredentialCookie is the name of the backend-issued credential cookie.
	// The gateway only ever checks this cookie's presence and forwards it;
	// its value stays opaque.
	CredentialCookie string `env:"APP_CREDENTIAL_COOKIE" envDefault:"access_token"`
}
