package cfg

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/linnemanlabs/trigon/internal/authmw"
)

// Config holds trigon server settings. It follows the go-core
// cfg.Registerable and cfg.Validatable conventions.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	DatabaseURL           string
	DatabaseMaxConns      int
	SlowQueryMillis       int
	APITokens             string
	AllowFractional       bool
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 10, "seconds to wait for in-flight requests to drain before shutdown (0..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 30, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL (empty = in-memory store)")
	fs.IntVar(&c.DatabaseMaxConns, "database-max-conns", 0, "maximum PostgreSQL pool connections (0 = pgx default)")
	fs.IntVar(&c.SlowQueryMillis, "slow-query-ms", 100, "log successful queries slower than this many milliseconds (0 = log all)")
	fs.StringVar(&c.APITokens, "api-tokens", "", "comma-separated bearer tokens required on /api/v1 (empty = no auth)")
	fs.BoolVar(&c.AllowFractional, "allow-fractional", false, "accept side lengths with a fractional part")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds < 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 0..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	if c.DatabaseMaxConns < 0 || c.DatabaseMaxConns > 1000 {
		errs = append(errs, fmt.Errorf("invalid DATABASE_MAX_CONNS %d (must be 0..1000)", c.DatabaseMaxConns))
	}
	if c.DatabaseMaxConns > 0 && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_MAX_CONNS set without DATABASE_URL"))
	}
	if c.SlowQueryMillis < 0 {
		errs = append(errs, fmt.Errorf("invalid SLOW_QUERY_MS %d (must be >= 0)", c.SlowQueryMillis))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Tokens returns the configured bearer tokens, or nil when auth is off.
func (c *Config) Tokens() []string {
	return authmw.SplitTokens(c.APITokens)
}

// SlowQuery returns the slow query threshold as a duration.
func (c *Config) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMillis) * time.Millisecond
}
