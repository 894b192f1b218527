package smtp

import "time"

// Config is read from MAIL_* variables. Username doubles as the sender address.
type Config struct {
	Host     string `env:"MAIL_HOST" envDefault:"localhost"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	// Display name added to the sender identity.
	FromName string `env:"MAIL_FROM_NAME"`
	// TLS policy: mandatory, opportunistic or none.
	TLSPolicy string `env:"MAIL_TLS_POLICY" envDefault:"opportunistic"`
	// Implicit TLS (SMTPS), usually on port 465.
	SSL     bool          `env:"MAIL_SSL" envDefault:"false"`
	Timeout time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`
}
