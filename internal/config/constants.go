package config

import "time"

const (
	envPort              = "PORT"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"
	envDefaultTournament = "DEFAULT_TOURNAMENT"

	envStorageBackend = "STORAGE_BACKEND"
	envR2Endpoint     = "R2_ENDPOINT"
	envR2AccessKey    = "R2_ACCESS_KEY_ID"
	envR2SecretKey    = "R2_SECRET_ACCESS_KEY"
	envR2Bucket       = "R2_BUCKET"
	envR2BucketName   = "R2_BUCKET_NAME"
	envR2PublicURL    = "R2_PUBLIC_URL"

	envProvider         = "PROVIDER"
	envScanner          = "ROSTER_SCANNER"
	envFetchTimeout     = "FETCH_TIMEOUT"
	envFetchRetries     = "FETCH_RETRIES"
	envFetchBackoff     = "FETCH_BACKOFF"
	envFetchMinInterval = "FETCH_MIN_INTERVAL"

	envTokenSecret = "ADMIN_TOKEN_SECRET"
	envTokenTTL    = "ADMIN_TOKEN_TTL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envPollInterval    = "ROSTER_POLL_INTERVAL"
	envPollTournaments = "ROSTER_POLL_TOURNAMENTS"

	defaultPort           = "4000"
	defaultTournament     = "26prague"
	defaultStorageBackend = "s3"
	defaultBucket         = "system-cards-01"
	defaultProvider       = "registration"
	defaultScanner        = "regex"
	defaultFetchTimeout   = 15 * time.Second
	defaultFetchRetries   = 3
	defaultFetchBackoff   = 500 * time.Millisecond
	defaultTokenTTL       = 24 * time.Hour
	defaultMetricsPort    = "9090"
	defaultServiceName    = "system-cards"
)
