// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Quizserve serves the quiz generation endpoint on a local HTTP server.

It is the same handler that is deployed as a serverless function at
/api/generateQuiz, useful for development and for self-hosting.

# Usage

	$ GEMINI_API_KEY=... quizserve [-addr localhost:3000] [-verbose]

Then:

	$ curl -d '{"prompt": "Generate a 3-question quiz about Go as JSON."}' localhost:3000/api/generateQuiz

The Gemini API key is read from the GEMINI_API_KEY environment variable. If
it is not set, the server still starts, but every quiz request fails with a
configuration error and /health reports the problem.

When run as a systemd service with Type=notify, quizserve reports readiness
once it accepts connections and keeps the watchdog updated if WatchdogSec is
set.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/quizgen/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
