package config

import "time"

// Config holds runtime configuration for the server.
type Config struct {
	Port              string
	LogLevel          string
	LogFormat         string
	DefaultTournament string
	Storage           StorageConfig
	Upstream          UpstreamConfig
	Auth              AuthConfig
	Metrics           MetricsConfig
	Poller            PollerConfig
}

// UpstreamConfig controls how registration pages are fetched and parsed.
type UpstreamConfig struct {
	Provider    string // "registration" or "fixture"
	Scanner     string // "regex" or "dom"
	Timeout     time.Duration
	Retries     int
	Backoff     time.Duration
	MinInterval time.Duration // zero disables upstream spacing
}

// AuthConfig controls admin token issuance.
type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// PollerConfig controls the background roster snapshot refresher. A zero
// Interval disables it.
type PollerConfig struct {
	Interval    time.Duration
	Tournaments []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:              envOrDefault(envPort, defaultPort),
		LogLevel:          envOrDefault(envLogLevel, "info"),
		LogFormat:         envOrDefault(envLogFormat, "text"),
		DefaultTournament: envOrDefault(envDefaultTournament, defaultTournament),
		Storage:           loadStorage(),
		Upstream:          loadUpstream(),
		Auth:              loadAuth(),
		Metrics:           loadMetrics(),
		Poller:            loadPoller(),
	}
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		Provider:    envOrDefault(envProvider, defaultProvider),
		Scanner:     envOrDefault(envScanner, defaultScanner),
		Timeout:     durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
		Retries:     intEnvOrDefault(envFetchRetries, defaultFetchRetries),
		Backoff:     durationEnvOrDefault(envFetchBackoff, defaultFetchBackoff),
		MinInterval: durationEnvOrDefault(envFetchMinInterval, 0),
	}
}

func loadAuth() AuthConfig {
	return AuthConfig{
		TokenSecret: envOrDefault(envTokenSecret, ""),
		TokenTTL:    durationEnvOrDefault(envTokenTTL, defaultTokenTTL),
	}
}

func loadPoller() PollerConfig {
	interval, err := time.ParseDuration(envOrDefault(envPollInterval, "0s"))
	if err != nil || interval < 0 {
		interval = 0
	}
	return PollerConfig{
		Interval:    interval,
		Tournaments: listEnvOrDefault(envPollTournaments, nil),
	}
}
