package configs

import (
	"fmt"
	"strings"
	"time"
)

// Exporter defaults.
const (
	DefaultUpdateInterval = 20 // seconds between collection cycles
	DefaultPort           = 8000
	DefaultCoins          = "bitcoin,ethereum,dogecoin,cardano,litecoin"
	DefaultMetricsPath    = "/metrics"
	DefaultAPIBaseURL     = "https://api.coingecko.com/api/v3"
	DefaultRequestTimeout = 10 // seconds, hard bound on the upstream call
)

// ExporterConfig holds configuration settings for the exporter process.
// The tracked coin set is fixed for the process lifetime.
type ExporterConfig struct {
	UpdateInterval int      `json:"update_interval"` // Seconds between collection cycles
	Port           int      `json:"port"`            // Exposition listen port (binds all interfaces)
	Coins          []string `json:"coins"`           // Tracked asset slugs
	MetricsPath    string   `json:"metrics_path"`    // Exposition HTTP path
	APIBaseURL     string   `json:"api_base_url"`    // Upstream API base URL
	RequestTimeout int      `json:"request_timeout"` // Upstream request timeout in seconds
}

// ExporterConfigOpt applies one option to an ExporterConfig.
type ExporterConfigOpt func(*ExporterConfig) error

// NewExporterConfig builds a config from defaults plus the given options.
func NewExporterConfig(opts ...ExporterConfigOpt) (*ExporterConfig, error) {
	cfg := &ExporterConfig{
		UpdateInterval: DefaultUpdateInterval,
		Port:           DefaultPort,
		Coins:          splitCoins(DefaultCoins),
		MetricsPath:    DefaultMetricsPath,
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithUpdateInterval sets the polling interval to the first positive value.
func WithUpdateInterval(intervals ...int) ExporterConfigOpt {
	return func(cfg *ExporterConfig) error {
		for _, interval := range intervals {
			if interval > 0 {
				cfg.UpdateInterval = interval
				break
			}
		}
		return nil
	}
}

// WithPort sets the listen port to the first valid value.
func WithPort(ports ...int) ExporterConfigOpt {
	return func(cfg *ExporterConfig) error {
		for _, port := range ports {
			if port <= 0 {
				continue
			}
			if port > 65535 {
				return fmt.Errorf("invalid port: %d", port)
			}
			cfg.Port = port
			break
		}
		return nil
	}
}

// WithCoins sets the tracked coin list from the first non-empty
// comma-separated value.
func WithCoins(lists ...string) ExporterConfigOpt {
	return func(cfg *ExporterConfig) error {
		for _, list := range lists {
			if strings.TrimSpace(list) != "" {
				cfg.Coins = splitCoins(list)
				break
			}
		}
		return nil
	}
}

// WithMetricsPath sets the exposition path to the first non-empty value.
func WithMetricsPath(paths ...string) ExporterConfigOpt {
	return func(cfg *ExporterConfig) error {
		for _, path := range paths {
			if strings.TrimSpace(path) != "" {
				cfg.MetricsPath = path
				break
			}
		}
		return nil
	}
}

// WithAPIBaseURL sets the upstream base URL to the first non-empty value.
func WithAPIBaseURL(urls ...string) ExporterConfigOpt {
	return func(cfg *ExporterConfig) error {
		for _, u := range urls {
			if strings.TrimSpace(u) != "" {
				cfg.APIBaseURL = u
				break
			}
		}
		return nil
	}
}

// WithRequestTimeout sets the upstream timeout to the first positive value.
func WithRequestTimeout(timeouts ...int) ExporterConfigOpt {
	return func(cfg *ExporterConfig) error {
		for _, timeout := range timeouts {
			if timeout > 0 {
				cfg.RequestTimeout = timeout
				break
			}
		}
		return nil
	}
}

// Address returns the listen address, bound to all interfaces.
func (cfg *ExporterConfig) Address() string {
	return fmt.Sprintf(":%d", cfg.Port)
}

// Interval returns the polling interval as a duration.
func (cfg *ExporterConfig) Interval() time.Duration {
	return time.Duration(cfg.UpdateInterval) * time.Second
}

// Timeout returns the upstream request timeout as a duration.
func (cfg *ExporterConfig) Timeout() time.Duration {
	return time.Duration(cfg.RequestTimeout) * time.Second
}

func splitCoins(list string) []string {
	parts := strings.Split(list, ",")
	coins := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			coins = append(coins, c)
		}
	}
	return coins
}
