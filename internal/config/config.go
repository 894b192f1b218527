// Package config loads the service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/mailscheduler/pkg/db"
	"github.com/dmitrymomot/mailscheduler/pkg/logger"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer/filesender"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer/resend"
	"github.com/dmitrymomot/mailscheduler/pkg/mailer/smtp"
)

// Job backends.
const (
	BackendMemory = "memory"
	BackendRiver  = "river"
)

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
	ProviderFile   = "file"
)

// ErrInvalidConfig is returned by Load for values env parsing accepts but the service does not.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete service configuration.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// Where pending jobs live: memory (lost on restart) or river (Postgres).
	JobBackend string `env:"JOB_BACKEND" envDefault:"memory"`
	JobWorkers int    `env:"JOB_WORKERS" envDefault:"10"`

	MailProvider string `env:"MAIL_PROVIDER" envDefault:"smtp"`

	Logger     logger.Config
	Mailer     mailer.Config
	SMTP       smtp.Config
	Resend     resend.Config
	FileSender filesender.Config
	DB         db.Config
}

// Load parses the environment and checks cross-field constraints.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.JobBackend {
	case BackendMemory:
	case BackendRiver:
		if c.DB.ConnectionString == "" {
			errs = append(errs, errors.New("DATABASE_CONN_URL is required for the river backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown JOB_BACKEND %q", c.JobBackend))
	}

	if c.JobWorkers <= 0 {
		errs = append(errs, errors.New("JOB_WORKERS must be positive"))
	}

	switch c.MailProvider {
	case ProviderSMTP:
		if c.SMTP.Username == "" {
			errs = append(errs, errors.New("MAIL_USERNAME is required for the smtp provider"))
		}
	case ProviderResend:
		if c.Resend.APIKey == "" || c.Resend.SenderEmail == "" {
			errs = append(errs, errors.New("RESEND_API_KEY and RESEND_FROM_EMAIL are required for the resend provider"))
		}
	case ProviderFile:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
