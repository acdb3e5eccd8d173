// Package http holds HTTP plumbing shared by outbound clients.
package http

import (
	"net"
	"net/http"
	"time"
)

const userAgent = "mandacaru-broker/1.0"

// NewHTTPClient returns a client for outbound API calls.
// http.DefaultClient has no timeout, so callers always go through here.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &uaTransport{next: t},
	}
}

// uaTransport stamps a User-Agent on requests that lack one.
type uaTransport struct {
	next http.RoundTripper
}

func (u *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", userAgent)
	return u.next.RoundTrip(r)
}
