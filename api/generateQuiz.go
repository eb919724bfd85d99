// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package handler contains serverless functions deployed to Vercel.
package handler

import (
	"net/http"
	"os"

	"go.astrophena.name/quizgen/internal/quiz"
)

// Handler serves /api/generateQuiz. The API key is read from the environment
// on every invocation, so rotating it doesn't require a redeploy.
func Handler(w http.ResponseWriter, r *http.Request) {
	quiz.New(quiz.ConfigFromEnv(os.Getenv), nil, nil).ServeHTTP(w, r)
}
