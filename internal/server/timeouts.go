package server

import "time"

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 60 * time.Second // live roster fetches retry upstream
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
