// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.astrophena.name/quizgen/internal/logger"
	"go.astrophena.name/quizgen/internal/quiz"
	"go.astrophena.name/quizgen/internal/testutil"

	"github.com/aws/aws-lambda-go/events"
)

func event(method, body string, base64Encoded bool) events.APIGatewayV2HTTPRequest {
	ev := events.APIGatewayV2HTTPRequest{
		RawPath:         "/api/generateQuiz",
		Headers:         map[string]string{"content-type": "application/json"},
		Body:            body,
		IsBase64Encoded: base64Encoded,
	}
	ev.RequestContext.HTTP.Method = method
	ev.RequestContext.DomainName = "example.execute-api.us-east-1.amazonaws.com"
	return ev
}

func TestGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates": [{"content": {"parts": [{"text": "{\"title\": \"Go\"}"}]}}]}`)
	}))
	defer upstream.Close()

	g := &gateway{handler: quiz.New(quiz.Config{APIKey: "key", BaseURL: upstream.URL}, upstream.Client(), logger.Discard)}

	cases := map[string]struct {
		ev       events.APIGatewayV2HTTPRequest
		wantCode int
		wantBody string
	}{
		"plain body": {
			ev:       event(http.MethodPost, `{"prompt": "Go"}`, false),
			wantCode: http.StatusOK,
			wantBody: "{\n  \"title\": \"Go\"\n}\n",
		},
		"base64 body": {
			ev:       event(http.MethodPost, base64.StdEncoding.EncodeToString([]byte(`{"prompt": "Go"}`)), true),
			wantCode: http.StatusOK,
			wantBody: "{\n  \"title\": \"Go\"\n}\n",
		},
		"wrong method": {
			ev:       event(http.MethodGet, "", false),
			wantCode: http.StatusMethodNotAllowed,
			wantBody: "{\n  \"message\": \"Method Not Allowed\"\n}\n",
		},
		"missing prompt": {
			ev:       event(http.MethodPost, `{}`, false),
			wantCode: http.StatusBadRequest,
			wantBody: "{\n  \"error\": \"Bad Request: prompt is required.\"\n}\n",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := g.Handle(context.Background(), tc.ev)
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, resp.StatusCode, tc.wantCode)
			testutil.AssertEqual(t, resp.Body, tc.wantBody)
			testutil.AssertEqual(t, resp.Headers["Content-Type"], "application/json")
		})
	}
}

func TestGatewayInvalidBase64(t *testing.T) {
	g := &gateway{handler: http.NotFoundHandler(), logf: t.Logf}
	resp, err := g.Handle(context.Background(), event(http.MethodPost, "!!!", true))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
	testutil.AssertEqual(t, resp.Headers["Content-Type"], "application/json")
}

func TestToRequest(t *testing.T) {
	ev := event(http.MethodPost, "body", false)
	ev.RawQueryString = "a=1&b=2"
	ev.Cookies = []string{"a=1", "b=2"}
	ev.RequestContext.HTTP.SourceIP = "192.0.2.1"

	r, err := toRequest(context.Background(), ev)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, r.Method, http.MethodPost)
	testutil.AssertEqual(t, r.URL.Path, "/api/generateQuiz")
	testutil.AssertEqual(t, r.URL.Query().Get("b"), "2")
	testutil.AssertEqual(t, r.Header.Get("Content-Type"), "application/json")
	testutil.AssertEqual(t, r.Header.Get("Cookie"), "a=1; b=2")
	testutil.AssertEqual(t, r.Host, "example.execute-api.us-east-1.amazonaws.com")
	testutil.AssertEqual(t, r.RemoteAddr, "192.0.2.1")
	b, _ := io.ReadAll(r.Body)
	testutil.AssertEqual(t, string(b), "body")
}

func TestResponseWriter(t *testing.T) {
	w := newResponseWriter()
	w.Header().Add("Vary", "A")
	w.Header().Add("Vary", "B")
	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "short and stout")

	resp := w.response()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusTeapot)
	testutil.AssertEqual(t, resp.Headers["Vary"], "A,B")
	testutil.AssertEqual(t, resp.Body, "short and stout")

	testutil.AssertEqual(t, newResponseWriter().response().StatusCode, http.StatusOK)
}
