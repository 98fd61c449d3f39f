package registration

import "time"

const (
	sourceName         = "registration"
	defaultHTTPTimeout = 15 * time.Second
	maxBodyBytes       = 8 << 20
	errorSnippetBytes  = 512
	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)
