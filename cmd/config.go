package cmd

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// ErrNoActiveDatabase means the databases list is absent, empty or has no active entry.
var ErrNoActiveDatabase = errors.New("no active database found in config")

// DBConfig is one entry of the databases list in nl2sql.yaml.
type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// Target describes the connection for log output without leaking a URL password.
func (c DBConfig) Target() string {
	u, err := url.Parse(c.DSN)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("%s via %s", c.Name, c.Driver)
	}
	return fmt.Sprintf("%s via %s (%s)", c.Name, c.Driver, u.Redacted())
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("%w (set active: true)", ErrNoActiveDatabase)
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}
	if activeConfig.DSN == "" {
		return nil, fmt.Errorf("active database %q has no dsn", activeConfig.Name)
	}

	return activeConfig, nil
}
