// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"go.astrophena.name/quizgen/internal/cli"
	"go.astrophena.name/quizgen/internal/cli/envflag"
	"go.astrophena.name/quizgen/internal/httplogger"
	"go.astrophena.name/quizgen/internal/quiz"
	"go.astrophena.name/quizgen/internal/request"
	"go.astrophena.name/quizgen/internal/systemd"
	"go.astrophena.name/quizgen/internal/web"
)

func main() { cli.Main(new(server)) }

type server struct {
	// configuration
	addr    *string
	verbose *bool

	mux *http.ServeMux

	// used in tests
	noServerStart bool
	baseURL       string
	httpc         *http.Client
}

func (s *server) Flags(fs *flag.FlagSet, env *cli.Env) {
	s.addr = envflag.Value(fs, env.Getenv, "addr", "ADDR", "localhost:3000", "Listen on `host:port`.")
	s.verbose = envflag.Value(fs, env.Getenv, "verbose", "VERBOSE", false, "Log outgoing HTTP requests.")
}

func (s *server) Run(ctx context.Context, env *cli.Env) error {
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", cli.ErrInvalidArgs, env.Args)
	}

	cfg := quiz.ConfigFromEnv(env.Getenv)
	cfg.BaseURL = s.baseURL
	if cfg.APIKey == "" {
		env.Logf("%s is not set, quiz requests will fail.", quiz.APIKeyEnv)
	}

	httpc := s.httpc
	if httpc == nil {
		httpc = &http.Client{Timeout: request.DefaultClient.Timeout}
	}
	if *s.verbose {
		withLogging := *httpc
		withLogging.Transport = httplogger.New(httpc.Transport, env.Logf)
		httpc = &withLogging
	}

	s.mux = http.NewServeMux()
	s.mux.Handle("/api/generateQuiz", quiz.New(cfg, httpc, env.Logf))
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		web.RespondJSONError(env.Logf, w, fmt.Errorf("%s: %w", r.URL.Path, web.ErrNotFound))
	})
	web.Health(s.mux).RegisterFunc("gemini", func() (status string, ok bool) {
		if cfg.APIKey == "" {
			return quiz.APIKeyEnv + " is not set", false
		}
		return "API key is configured", true
	})

	if s.noServerStart {
		return nil
	}

	sd := systemd.New(env.Getenv, env.Logf)
	go sd.WatchdogLoop(ctx)
	defer sd.Notify(systemd.Stopping)

	return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
		Addr:  *s.addr,
		Mux:   s.mux,
		Logf:  env.Logf,
		Ready: func() { sd.Notify(systemd.Ready) },
	})
}
