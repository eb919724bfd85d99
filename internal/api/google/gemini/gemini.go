// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gemini provides a very minimal client for interacting with Gemini
// API.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.astrophena.name/quizgen/internal/request"
)

const (
	// DefaultBaseURL is the base URL of the Gemini API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is the model used when Client.Model is empty.
	DefaultModel = "gemini-1.5-flash-latest"
)

// Client holds configuration for interacting with the Gemini API.
type Client struct {
	// APIKey is the API key used for authentication. It is sent as the key
	// query parameter.
	APIKey string
	// Model is the name of the model to use. Defaults to DefaultModel.
	Model string
	// BaseURL overrides DefaultBaseURL. Used in tests.
	BaseURL string
	// HTTPClient is an optional HTTP client to use for requests. Defaults to
	// request.DefaultClient.
	HTTPClient *http.Client
	// Scrubber is an optional strings.Replacer that scrubs unwanted data from
	// error messages. If nil, the API key is scrubbed.
	Scrubber *strings.Replacer
}

// GenerateContentParams defines the structure for the request body sent to the
// GenerateContent API.
type GenerateContentParams struct {
	// Contents is a list of Content objects representing the input text for
	// generation.
	Contents []*Content `json:"contents"`
}

// Content represents a piece of text content with a list of Part objects.
type Content struct {
	// Parts is a list of Part objects representing the textual elements within
	// the content.
	Parts []*Part `json:"parts"`
}

// Part represents a textual element within a Content object.
type Part struct {
	// Text is the content of the textual element.
	Text string `json:"text"`
}

// GenerateContentResponse defines the structure of the response received from
// the GenerateContent API.
type GenerateContentResponse struct {
	// Candidates is a list of Candidate objects representing the generated text
	// alternatives.
	Candidates []*Candidate `json:"candidates"`
}

// Candidate represents a generated text candidate with a corresponding Content
// object.
type Candidate struct {
	// Content is the generated text content for this candidate.
	Content *Content `json:"content"`
}

// ErrNoText is returned by [GenerateContentResponse.Text] when the response
// doesn't contain text at candidates[0].content.parts[0].text.
var ErrNoText = errors.New("gemini: response has no text in the first part of the first candidate")

// Text returns the text of the first part of the first candidate.
func (r *GenerateContentResponse) Text() (string, error) {
	if r == nil || len(r.Candidates) == 0 {
		return "", ErrNoText
	}
	c := r.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return "", ErrNoText
	}
	return c.Content.Parts[0].Text, nil
}

// UserPrompt returns GenerateContentParams with a single content holding a
// single text part.
func UserPrompt(text string) GenerateContentParams {
	return GenerateContentParams{
		Contents: []*Content{{Parts: []*Part{{Text: text}}}},
	}
}

// GenerateContent sends a request to the Gemini API to generate content.
//
// If the API responds with a non-2xx status, the returned error wraps
// [*request.StatusError].
func (c *Client) GenerateContent(ctx context.Context, params GenerateContentParams) (*GenerateContentResponse, error) {
	return request.Make[*GenerateContentResponse](ctx, request.Params{
		Method:     http.MethodPost,
		URL:        c.endpoint("generateContent"),
		Body:       params,
		HTTPClient: c.HTTPClient,
		Scrubber:   c.scrubber(),
	})
}

func (c *Client) endpoint(method string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	return strings.TrimSuffix(base, "/") + "/models/" + model + ":" + method + "?key=" + url.QueryEscape(c.APIKey)
}

func (c *Client) scrubber() *strings.Replacer {
	if c.Scrubber != nil {
		return c.Scrubber
	}
	if c.APIKey == "" {
		return nil
	}
	pairs := []string{c.APIKey, "[EXPUNGED]"}
	if escaped := url.QueryEscape(c.APIKey); escaped != c.APIKey {
		pairs = append(pairs, escaped, "[EXPUNGED]")
	}
	return strings.NewReplacer(pairs...)
}
