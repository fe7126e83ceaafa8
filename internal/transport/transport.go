// Package transport provides the HTTP transport for outbound API calls.
package transport

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// New creates the http.RoundTripper used for Printlane API calls. It is a
// plain http.Transport with HTTP/2 enabled and every phase of the connection
// bounded by the given timeout, so a stalled dial or handshake can never
// outlive the request deadline of the calling client.
//
// Connection pooling is deliberately small: the bridge talks to exactly one
// upstream host, and webhook bursts rarely need more than a couple of
// concurrent connections per store.
func New(timeout time.Duration) http.RoundTripper {
	t := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	// ConfigureTransports registers the h2 upgrade on the pool; if it
	// fails (it only can on an already-configured transport) the plain
	// HTTP/1.1 transport still works.
	if _, err := http2.ConfigureTransports(t); err == nil {
		t.ForceAttemptHTTP2 = true
	}

	return t
}
