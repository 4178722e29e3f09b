package cfg

import (
	"errors"
	"flag"
	"fmt"
	"net"

	"github.com/linnemanlabs/triagedesk/internal/triage"
)

// Config holds the app-specific settings, registered alongside the
// go-core package configs in main.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIHost               string
	APIPort               int
	SlackWebhookURL       string
	NotifyUrgency         string
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 10, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 30, "total seconds for component shutdown after drain (1..300)")
	fs.StringVar(&c.APIHost, "http-host", "", "API listen host (empty = all interfaces)")
	fs.IntVar(&c.APIPort, "http-port", 8000, "API listen TCP port (1..65535)")
	fs.StringVar(&c.SlackWebhookURL, "slack-webhook-url", "", "Slack webhook URL for ticket notifications (empty = disabled)")
	fs.StringVar(&c.NotifyUrgency, "notify-urgency", string(triage.UrgencyHigh), "minimum urgency that triggers a notification (low, medium, high)")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Host is optional but must be a bare host or IP, not host:port
	if c.APIHost != "" {
		if _, _, err := net.SplitHostPort(c.APIHost); err == nil {
			errs = append(errs, fmt.Errorf("invalid HTTP_HOST %q (must not include a port)", c.APIHost))
		}
	}

	if _, ok := triage.ParseUrgency(c.NotifyUrgency); !ok {
		errs = append(errs, fmt.Errorf("invalid NOTIFY_URGENCY %q (must be low, medium or high)", c.NotifyUrgency))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ListenAddr returns the host:port the API listener binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.APIHost, fmt.Sprint(c.APIPort))
}

// NotifyAt returns the parsed notification threshold.
func (c *Config) NotifyAt() triage.Urgency {
	u, _ := triage.ParseUrgency(c.NotifyUrgency)
	return u
}
