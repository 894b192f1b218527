package resend

// Config is read from RESEND_* variables.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
	// Points the client at another endpoint, e.g. a local mock.
	BaseURL string `env:"RESEND_BASE_URL"`
}
