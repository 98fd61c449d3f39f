package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures in-memory fetch statistics and forwards everything to
// OpenTelemetry instruments when they are configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*sourceStats
	uploads map[string]int
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*sourceStats),
		uploads: make(map[string]int),
		otel:    otel,
	}
}

// RecordFetchAttempt counts one upstream fetch against source and keeps its latency.
func (r *Recorder) RecordFetchAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks a 429 from source and the Retry-After it carried.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordUpload counts a convention card upload by outcome.
func (r *Recorder) RecordUpload(outcome string, size int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.uploads[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpload(outcome, size)
	}
}

// Uploads returns how many uploads ended with outcome.
func (r *Recorder) Uploads(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads[outcome]
}

// FetchCalls returns the total attempts recorded for a source.
func (r *Recorder) FetchCalls(source string) int {
	return r.Snapshot(source).Calls
}

// FetchErrors returns the failed attempts recorded for a source.
func (r *Recorder) FetchErrors(source string) int {
	return r.Snapshot(source).Errors
}

// Snapshot is a copy of the stats kept for one source.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRosterEntities tracks how many entities a roster extraction produced.
func (r *Recorder) RecordRosterEntities(kind string, count int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRosterEntities(kind, count)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
