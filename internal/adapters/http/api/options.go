package api

type options struct {
	secureCookie bool
}

// Option configures the API server.
type Option func(*options)

// WithSecureCookie marks the session cookie Secure (HTTPS deployments).
func WithSecureCookie(secure bool) Option {
	return func(o *options) { o.secureCookie = secure }
}
