// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.astrophena.name/quizgen/internal/testutil"
)

func TestHandlerReadsKeyPerInvocation(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodPost, "/api/generateQuiz", strings.NewReader(`{"prompt": "Go"}`)))
	testutil.AssertEqual(t, w.Code, http.StatusInternalServerError)
	testutil.AssertEqual(t, w.Body.String(), "{\n  \"error\": \"Server configuration error: API key not found.\"\n}\n")

	t.Setenv("GEMINI_API_KEY", "key")

	// With the key set, validation is reached before any upstream call.
	w = httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodPost, "/api/generateQuiz", strings.NewReader(`{}`)))
	testutil.AssertEqual(t, w.Code, http.StatusBadRequest)
}

func TestHandlerRejectsGet(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "/api/generateQuiz", nil))
	testutil.AssertEqual(t, w.Code, http.StatusMethodNotAllowed)
}
