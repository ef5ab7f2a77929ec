package submit

import (
	"net/http"
	"time"

	"github.com/goliatone/go-formsend/pkg/notify"
)

const (
	// DefaultTimeout bounds a request when no client is supplied.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxResponseBytes caps how much of a response body is read.
	DefaultMaxResponseBytes int64 = 4 << 20
)

// Option customises a Submitter.
type Option func(*Submitter)

// WithHTTPClient sets the client used to perform requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Submitter) {
		if timeout <= 0 {
			return
		}
		clone := *s.httpClient
		clone.Timeout = timeout
		s.httpClient = &clone
	}
}

// WithNotifier sets the notifier that receives validation, progress and
// outcome notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Submitter) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithHeader adds a header sent with every request. Request specific headers
// override it.
func WithHeader(key, value string) Option {
	return func(s *Submitter) {
		if s.header == nil {
			s.header = make(http.Header)
		}
		s.header.Set(key, value)
	}
}

// WithMaxResponseBytes caps the response body read per request.
func WithMaxResponseBytes(n int64) Option {
	return func(s *Submitter) {
		if n > 0 {
			s.maxBody = n
		}
	}
}
