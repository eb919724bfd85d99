// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package quiz

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages shown to callers. They are part of the public contract of the
// endpoint and must not change.
const (
	msgMethodNotAllowed = "Method Not Allowed"
	msgNoAPIKey         = "Server configuration error: API key not found."
	msgPromptRequired   = "Bad Request: prompt is required."
	msgUpstreamFailed   = "Failed to get a response from the AI model."
	msgInternal         = "An internal server error occurred."
)

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

// responder is implemented by every error produced while handling a request.
// It decides what the caller sees.
type responder interface {
	error
	response() (code int, body any)
}

// MethodError is returned when the request method is not POST.
type MethodError struct {
	Method string
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("method %s not allowed", e.Method)
}

func (e *MethodError) response() (int, any) {
	return http.StatusMethodNotAllowed, &messageBody{Message: msgMethodNotAllowed}
}

// ConfigError signals a deployment misconfiguration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Reason }

func (e *ConfigError) response() (int, any) {
	return http.StatusInternalServerError, &errorBody{Error: msgNoAPIKey}
}

// ValidationError is returned when the request body doesn't carry a prompt.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) response() (int, any) {
	return http.StatusBadRequest, &errorBody{Error: msgPromptRequired}
}

// UpstreamStatusError is returned when Gemini API responded with a non-2xx
// status. The status is passed through to the caller, the body is not.
//
// Err carries the upstream body for logging, with the API key scrubbed.
type UpstreamStatusError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("Gemini API responded with %d: %v", e.StatusCode, e.Err)
}
func (e *UpstreamStatusError) Unwrap() error { return e.Err }

func (e *UpstreamStatusError) response() (int, any) {
	return e.StatusCode, &errorBody{Error: msgUpstreamFailed}
}

// UpstreamTransportError is returned when Gemini API couldn't be reached or
// its response couldn't be read.
type UpstreamTransportError struct {
	Err error
}

func (e *UpstreamTransportError) Error() string {
	return "calling Gemini API: " + e.Err.Error()
}
func (e *UpstreamTransportError) Unwrap() error { return e.Err }

func (e *UpstreamTransportError) response() (int, any) {
	return http.StatusInternalServerError, &errorBody{Error: msgInternal}
}

// UpstreamShapeError is returned when Gemini API responded with something
// other than a GenerateContent response with text in the first part of the
// first candidate.
type UpstreamShapeError struct {
	Err error
}

func (e *UpstreamShapeError) Error() string {
	return "unexpected Gemini API response: " + e.Err.Error()
}
func (e *UpstreamShapeError) Unwrap() error { return e.Err }

func (e *UpstreamShapeError) response() (int, any) {
	return http.StatusInternalServerError, &errorBody{Error: msgInternal}
}

// PayloadParseError is returned when the text generated by the model is not
// valid JSON.
type PayloadParseError struct {
	Text string
	Err  error
}

func (e *PayloadParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v: %q", e.Err, e.Text)
}
func (e *PayloadParseError) Unwrap() error { return e.Err }

func (e *PayloadParseError) response() (int, any) {
	return http.StatusInternalServerError, &errorBody{Error: msgInternal}
}

// responseFor returns the status code and body shown to the caller for err.
// Errors that aren't one of the types above are internal errors.
func responseFor(err error) (code int, body any) {
	var r responder
	if errors.As(err, &r) {
		return r.response()
	}
	return http.StatusInternalServerError, &errorBody{Error: msgInternal}
}

// shouldLog reports whether err points at a problem with the deployment or
// the upstream rather than with the caller's request.
func shouldLog(err error) bool {
	var (
		me *MethodError
		ve *ValidationError
	)
	return !errors.As(err, &me) && !errors.As(err, &ve)
}
