package mailer

// Config is read from MAILER_* variables.
type Config struct {
	// Product name shown in the layout header.
	BrandName string `env:"MAILER_BRAND_NAME"`
	// Footer line shown under the message body.
	Footer string `env:"MAILER_FOOTER"`
	// Wrap bodies in the built-in base layout. HTML bodies are sent as given when false.
	UseLayout bool `env:"MAILER_USE_LAYOUT" envDefault:"false"`
	// Strip scripts, handlers and unsafe URLs from HTML bodies.
	SanitizeHTML bool `env:"MAILER_SANITIZE_HTML" envDefault:"false"`
}
