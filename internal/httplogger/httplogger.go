// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package httplogger provides a http.RoundTripper middleware that logs HTTP
// requests and responses.
//
// It wraps an existing http.RoundTripper and logs the start time, URL, method,
// status code (if available), and any errors of each request. Query strings
// are never logged, since APIs such as Gemini carry credentials in them.
package httplogger

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.astrophena.name/quizgen/internal/logger"
)

// New creates a new http.RoundTripper that logs information about HTTP requests
// and responses. If t is nil, http.DefaultTransport is used.
func New(t http.RoundTripper, logf logger.Logf) http.RoundTripper {
	if t == nil {
		t = http.DefaultTransport
	}
	if logf == nil {
		logf = logger.Discard
	}
	return &loggingTransport{transport: t, logf: logf}
}

type loggingTransport struct {
	transport http.RoundTripper
	logf      logger.Logf

	mu     sync.Mutex
	active int
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	u := redact(r.URL)

	t.mu.Lock()
	t.active++
	inflight := t.active
	t.mu.Unlock()
	t.logf("HTTP: %s + %s %s (%d in flight)", timeFormat(start), r.Method, u, inflight)

	resp, err := t.transport.RoundTrip(r)

	t.mu.Lock()
	t.active--
	t.mu.Unlock()

	display := r.Method + " " + u
	if resp != nil {
		display += " " + resp.Status
	}
	if err != nil {
		display += " error: " + redactErr(err)
	}
	now := time.Now()
	t.logf("HTTP: %s - %s (%.3fs)", timeFormat(now), display, now.Sub(start).Seconds())

	return resp, err
}

// redact returns u as a string with the query string and user info removed.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	c.User = nil
	c.RawQuery = ""
	c.ForceQuery = false
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

func redactErr(err error) string {
	ue, ok := err.(*url.Error)
	if !ok {
		return err.Error()
	}
	var u string
	if parsed, perr := url.Parse(ue.URL); perr == nil {
		u = redact(parsed)
	}
	return (&url.Error{Op: ue.Op, URL: u, Err: ue.Err}).Error()
}

func timeFormat(t time.Time) string {
	return t.Format("15:04:05.000")
}
