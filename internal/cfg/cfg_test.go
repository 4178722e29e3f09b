package cfg

import (
	"flag"
	"math"
	"strings"
	"testing"

	"github.com/linnemanlabs/triagedesk/internal/triage"
)

// validBase returns a Config with all required fields set to valid values.
func validBase() Config {
	return Config{
		DrainSeconds:          10,
		ShutdownBudgetSeconds: 30,
		APIPort:               8000,
		NotifyUrgency:         "high",
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse empty args: %v", err)
	}

	if c.DrainSeconds != 10 {
		t.Errorf("DrainSeconds = %d, want 10", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 30 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 30", c.ShutdownBudgetSeconds)
	}
	if c.APIHost != "" {
		t.Errorf("APIHost = %q, want empty", c.APIHost)
	}
	if c.APIPort != 8000 {
		t.Errorf("APIPort = %d, want 8000", c.APIPort)
	}
	if c.NotifyUrgency != "high" {
		t.Errorf("NotifyUrgency = %q, want high", c.NotifyUrgency)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate, got: %v", err)
	}
}

func TestRegisterFlags_Override(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	args := []string{
		"-drain-seconds", "30",
		"-shutdown-budget-seconds", "120",
		"-http-host", "127.0.0.1",
		"-http-port", "9090",
		"-slack-webhook-url", "https://hooks.slack.com/services/T/B/X",
		"-notify-urgency", "medium",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if c.DrainSeconds != 30 {
		t.Errorf("DrainSeconds = %d, want 30", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 120 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 120", c.ShutdownBudgetSeconds)
	}
	if c.ListenAddr() != "127.0.0.1:9090" {
		t.Errorf("ListenAddr() = %q, want %q", c.ListenAddr(), "127.0.0.1:9090")
	}
	if c.SlackWebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("SlackWebhookURL = %q", c.SlackWebhookURL)
	}
	if c.NotifyAt() != triage.UrgencyMedium {
		t.Errorf("NotifyAt() = %q, want %q", c.NotifyAt(), triage.UrgencyMedium)
	}
}

func TestListenAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8000, ":8000"},
		{"localhost", 8080, "localhost:8080"},
		{"::1", 8000, "[::1]:8000"},
	}
	for _, tt := range tests {
		c := Config{APIHost: tt.host, APIPort: tt.port}
		if got := c.ListenAddr(); got != tt.want {
			t.Errorf("ListenAddr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	with := func(f func(*Config)) Config {
		c := validBase()
		f(&c)
		return c
	}

	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr []string // substrings that must appear in error message
	}{
		{
			name:    "defaults are valid",
			cfg:     validBase(),
			wantErr: false,
		},
		{
			name: "minimum valid values",
			cfg: Config{
				DrainSeconds: 1, ShutdownBudgetSeconds: 2, APIPort: 1,
				NotifyUrgency: "low",
			},
			wantErr: false,
		},
		{
			name: "maximum valid values",
			cfg: Config{
				DrainSeconds: 299, ShutdownBudgetSeconds: 300, APIPort: 65535,
				NotifyUrgency: "medium",
			},
			wantErr: false,
		},
		// DrainSeconds boundaries
		{
			name:      "drain zero",
			cfg:       with(func(c *Config) { c.DrainSeconds = 0 }),
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		{
			name:      "drain above max",
			cfg:       with(func(c *Config) { c.DrainSeconds = 301; c.ShutdownBudgetSeconds = 302 }),
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		// ShutdownBudgetSeconds boundaries
		{
			name:      "budget zero",
			cfg:       with(func(c *Config) { c.ShutdownBudgetSeconds = 0 }),
			wantErr:   true,
			errSubstr: []string{"SHUTDOWN_BUDGET_SECONDS"},
		},
		{
			name:      "budget above max",
			cfg:       with(func(c *Config) { c.ShutdownBudgetSeconds = 301 }),
			wantErr:   true,
			errSubstr: []string{"SHUTDOWN_BUDGET_SECONDS"},
		},
		// Cross-field: budget vs drain
		{
			name:      "budget equals drain",
			cfg:       with(func(c *Config) { c.DrainSeconds = 30; c.ShutdownBudgetSeconds = 30 }),
			wantErr:   true,
			errSubstr: []string{"must be greater than"},
		},
		// APIPort boundaries
		{
			name:      "port zero",
			cfg:       with(func(c *Config) { c.APIPort = 0 }),
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		{
			name:      "port above max",
			cfg:       with(func(c *Config) { c.APIPort = 65536 }),
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		// Host
		{
			name:    "hostname",
			cfg:     with(func(c *Config) { c.APIHost = "localhost" }),
			wantErr: false,
		},
		{
			name:    "ipv6 host",
			cfg:     with(func(c *Config) { c.APIHost = "::1" }),
			wantErr: false,
		},
		{
			name:      "host with port",
			cfg:       with(func(c *Config) { c.APIHost = "localhost:8000" }),
			wantErr:   true,
			errSubstr: []string{"HTTP_HOST"},
		},
		// Notification threshold
		{
			name:      "unknown urgency",
			cfg:       with(func(c *Config) { c.NotifyUrgency = "critical" }),
			wantErr:   true,
			errSubstr: []string{"NOTIFY_URGENCY"},
		},
		{
			name:      "empty urgency",
			cfg:       with(func(c *Config) { c.NotifyUrgency = "" }),
			wantErr:   true,
			errSubstr: []string{"NOTIFY_URGENCY"},
		},
		// Error accumulation: all fields invalid
		{
			name:      "all fields invalid",
			cfg:       Config{APIHost: "h:1"},
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS", "SHUTDOWN_BUDGET_SECONDS", "HTTP_PORT", "HTTP_HOST", "NOTIFY_URGENCY"},
		},
		// Extreme values
		{
			name:      "extreme negative values",
			cfg:       Config{DrainSeconds: math.MinInt32, ShutdownBudgetSeconds: math.MinInt32, APIPort: math.MinInt32, NotifyUrgency: "high"},
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS", "SHUTDOWN_BUDGET_SECONDS", "HTTP_PORT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				errMsg := err.Error()
				for _, sub := range tt.errSubstr {
					if !strings.Contains(errMsg, sub) {
						t.Errorf("error %q does not contain %q", errMsg, sub)
					}
				}
			}
		})
	}
}

func FuzzValidate(f *testing.F) {
	// Seeds: defaults, boundaries, extremes
	seeds := []struct {
		drain, budget, port int
		urgency             string
	}{
		{10, 30, 8000, "high"},
		{1, 2, 1, "low"},
		{299, 300, 65535, "medium"},
		{0, 0, 0, ""},
		{-1, -1, -1, "HIGH"},
		{300, 300, 65535, "high"},
		{150, 100, 8080, "high"},
		{math.MinInt32, math.MinInt32, math.MinInt32, "x"},
		{math.MaxInt32, math.MaxInt32, math.MaxInt32, "low"},
	}
	for _, s := range seeds {
		f.Add(s.drain, s.budget, s.port, s.urgency)
	}

	f.Fuzz(func(t *testing.T, drain, budget, port int, urgency string) {
		c := Config{
			DrainSeconds:          drain,
			ShutdownBudgetSeconds: budget,
			APIPort:               port,
			NotifyUrgency:         urgency,
		}
		err := c.Validate()

		drainOK := drain >= 1 && drain <= 300
		budgetOK := budget >= 1 && budget <= 300
		portOK := port >= 1 && port <= 65535
		crossOK := budget > drain
		urgencyOK := urgency == "low" || urgency == "medium" || urgency == "high"

		allValid := drainOK && budgetOK && portOK && crossOK && urgencyOK

		if allValid && err != nil {
			t.Errorf("expected no error for valid config %+v, got: %v", c, err)
		}
		if !allValid && err == nil {
			t.Errorf("expected error for invalid config %+v, got nil", c)
		}
	})
}
