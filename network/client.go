// Package network holds the HTTP client used for outbound requests.
package network

import (
	"net/http"
	"time"
)

// Client is shared by every outbound request grauman makes.
// Responses are small JSON documents, so the timeouts are short.
var Client = &http.Client{
	Timeout:   15 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 2
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 10 * time.Second
	return t
}
