// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package quiz implements an HTTP handler that asks Gemini API to generate a
// quiz from a prompt and relays the generated JSON back to the caller.
//
// The handler accepts only POST requests with a JSON body:
//
//	{"prompt": "Generate 5 questions about the solar system as JSON."}
//
// The prompt is forwarded verbatim. The model is expected to answer with JSON
// text, which is parsed and returned as the response body.
package quiz

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"go.astrophena.name/quizgen/internal/api/google/gemini"
	"go.astrophena.name/quizgen/internal/logger"
	"go.astrophena.name/quizgen/internal/request"
	"go.astrophena.name/quizgen/internal/web"

	"github.com/google/uuid"
)

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// maxBodySize limits the size of request bodies.
const maxBodySize = 1 << 20 // 1 MiB

// Config is the read-only configuration of the [Handler].
type Config struct {
	// APIKey is the Gemini API key. If empty, every request fails with
	// a configuration error.
	APIKey string
	// BaseURL overrides the Gemini API base URL. Used in tests.
	BaseURL string
}

// ConfigFromEnv reads Config from the environment using getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	return Config{APIKey: getenv(APIKeyEnv)}
}

// New returns a new Handler. If httpc is nil, request.DefaultClient is used.
// If logf is nil, log.Printf is used.
func New(cfg Config, httpc *http.Client, logf logger.Logf) *Handler {
	if httpc == nil {
		httpc = request.DefaultClient
	}
	if logf == nil {
		logf = log.Printf
	}
	return &Handler{cfg: cfg, httpc: httpc, logf: logf}
}

// Handler is a [http.Handler] that generates quizzes.
type Handler struct {
	cfg   Config
	httpc *http.Client
	logf  logger.Logf
}

// ServeHTTP implements the [http.Handler] interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logf := logger.WithPrefix(h.logf, "generateQuiz["+uuid.NewString()+"]: ")

	quiz, err := h.generate(w, r)
	if err != nil {
		code, body := responseFor(err)
		if shouldLog(err) {
			logf("responding with %d: %v", code, err)
		}
		var me *MethodError
		if errors.As(err, &me) {
			w.Header().Set("Allow", http.MethodPost)
		}
		web.RespondJSONStatus(w, code, body)
		return
	}

	web.RespondJSON(w, quiz)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	if r.Method != http.MethodPost {
		return nil, &MethodError{Method: r.Method}
	}

	if h.cfg.APIKey == "" {
		return nil, &ConfigError{Reason: APIKeyEnv + " is not set"}
	}

	prompt, err := readPrompt(w, r)
	if err != nil {
		return nil, err
	}

	client := &gemini.Client{
		APIKey:     h.cfg.APIKey,
		BaseURL:    h.cfg.BaseURL,
		HTTPClient: h.httpc,
	}
	resp, err := client.GenerateContent(r.Context(), gemini.UserPrompt(prompt))
	if err != nil {
		return nil, upstreamError(err)
	}

	text, err := resp.Text()
	if err != nil {
		return nil, &UpstreamShapeError{Err: err}
	}

	var quiz json.RawMessage
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, &PayloadParseError{Text: text, Err: err}
	}
	return quiz, nil
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

func readPrompt(w http.ResponseWriter, r *http.Request) (string, error) {
	if r.Body == nil {
		return "", &ValidationError{Err: errors.New("empty body")}
	}
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return "", &ValidationError{Err: err}
	}
	var req promptRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return "", &ValidationError{Err: err}
	}
	if req.Prompt == "" {
		return "", &ValidationError{Err: errors.New("prompt is empty or missing")}
	}
	return req.Prompt, nil
}

func upstreamError(err error) error {
	var (
		se *request.StatusError
		de *request.DecodeError
	)
	switch {
	case errors.As(err, &se):
		// err is scrubbed, se is not.
		return &UpstreamStatusError{StatusCode: se.StatusCode, Err: err}
	case errors.As(err, &de):
		return &UpstreamShapeError{Err: err}
	default:
		return &UpstreamTransportError{Err: err}
	}
}
