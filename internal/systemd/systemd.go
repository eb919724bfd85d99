// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package systemd implements the parts of the sd_notify protocol needed by a
// long-running HTTP server: startup readiness and watchdog keepalives.
//
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
package systemd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.astrophena.name/quizgen/internal/logger"
)

// State is a sd_notify state message.
type State string

const (
	// Ready reports that startup is finished.
	Ready State = "READY=1"
	// Stopping reports that the service is shutting down.
	Stopping State = "STOPPING=1"
	// Watchdog updates the watchdog timestamp.
	Watchdog State = "WATCHDOG=1"
)

// Notifier sends state messages to the service manager. The zero value is not
// usable, construct it with [New].
type Notifier struct {
	socket   string
	interval time.Duration
	logf     logger.Logf
}

// New returns a Notifier configured from NOTIFY_SOCKET and WATCHDOG_USEC as
// returned by getenv. When the service isn't run by systemd, the returned
// Notifier does nothing.
func New(getenv func(string) string, logf logger.Logf) *Notifier {
	n := &Notifier{socket: getenv("NOTIFY_SOCKET"), logf: logf}
	if usec := getenv("WATCHDOG_USEC"); usec != "" {
		d, err := parseWatchdogUsec(usec)
		if err != nil {
			logf("systemd: %v", err)
		} else {
			n.interval = d
		}
	}
	return n
}

func parseWatchdogUsec(s string) (time.Duration, error) {
	usec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid WATCHDOG_USEC %q: %w", s, err)
	}
	if usec <= 0 {
		return 0, fmt.Errorf("invalid WATCHDOG_USEC %q: must be positive", s)
	}
	return time.Duration(usec) * time.Microsecond, nil
}

// Enabled reports whether the service is run by systemd.
func (n *Notifier) Enabled() bool { return n.socket != "" }

// Notify sends state to the service manager. Errors are logged.
func (n *Notifier) Notify(state State) {
	if !n.Enabled() {
		return
	}
	conn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Net: "unixgram", Name: n.socket})
	if err != nil {
		n.logf("systemd: notifying %s: %v", state, err)
		return
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(state)); err != nil {
		n.logf("systemd: notifying %s: %v", state, err)
	}
}

// WatchdogLoop sends [Watchdog] at half the interval requested by systemd
// until ctx is canceled. It returns immediately if the watchdog is disabled.
func (n *Notifier) WatchdogLoop(ctx context.Context) {
	if !n.Enabled() || n.interval == 0 {
		return
	}
	ticker := time.NewTicker(n.interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			n.Notify(Watchdog)
		case <-ctx.Done():
			return
		}
	}
}
