// Package config defines service configuration structures and loading hooks.
package config

// DefaultVacancies is the position list offered when none is configured.
var DefaultVacancies = []string{
	"Frontend Developer",
	"Backend Developer",
	"Fullstack Developer",
	"UI/UX Designer",
	"QA Engineer",
	"DevOps Engineer",
	"Product Manager",
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UsersAPIURL is the base URL of the remote users API.
	UsersAPIURL string `koanf:"users_api_url"`

	// UsersAPIToken is sent as a bearer token when set.
	UsersAPIToken string `koanf:"users_api_token"`

	// UsersAPITimeoutMS bounds a single create-user call; 0 disables the client timeout.
	UsersAPITimeoutMS int `koanf:"users_api_timeout_ms"`

	// SessionLimit caps the number of live form instances; <= 0 is unbounded.
	SessionLimit int `koanf:"session_limit"`

	// CookieSecure marks the session cookie Secure.
	CookieSecure bool `koanf:"cookie_secure"`

	// Vacancies is the enumerated set of positions a candidate may apply to.
	Vacancies []string `koanf:"vacancies"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		UsersAPIURL:       "http://localhost:3333",
		UsersAPITimeoutMS: 10_000,
		SessionLimit:      10_000,
		Vacancies:         append([]string(nil), DefaultVacancies...),
	}
}
