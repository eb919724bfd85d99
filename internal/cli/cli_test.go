// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"testing"

	"go.astrophena.name/quizgen/internal/testutil"
)

type greeter struct {
	name string
}

func (g *greeter) Flags(fs *flag.FlagSet, env *Env) {
	fs.StringVar(&g.name, "name", "world", "Who to greet.")
}

func (g *greeter) Run(ctx context.Context, env *Env) error {
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrInvalidArgs, env.Args)
	}
	fmt.Fprintf(env.Stdout, "Hello, %s!\n", g.name)
	return nil
}

func TestRun(t *testing.T) {
	cases := map[string]struct {
		args         []string
		wantErr      error
		wantInStdout string
		wantInStderr string
	}{
		"defaults": {
			wantInStdout: "Hello, world!",
		},
		"flag": {
			args:         []string{"-name", "gopher"},
			wantInStdout: "Hello, gopher!",
		},
		"help": {
			args:         []string{"-h"},
			wantErr:      flag.ErrHelp,
			wantInStderr: "Who to greet.",
		},
		"version": {
			args:    []string{"-version"},
			wantErr: ErrExitVersion,
		},
		"invalid args": {
			args:    []string{"extra"},
			wantErr: ErrInvalidArgs,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			env := &Env{
				Args:   tc.args,
				Stdout: &stdout,
				Stderr: &stderr,
			}
			err := Run(WithEnv(context.Background(), env), new(greeter))
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want error %v, got %v", tc.wantErr, err)
			}
			if !strings.Contains(stdout.String(), tc.wantInStdout) {
				t.Errorf("stdout must contain %q, got %q", tc.wantInStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tc.wantInStderr) {
				t.Errorf("stderr must contain %q, got %q", tc.wantInStderr, stderr.String())
			}
		})
	}
}

func TestIsPrintableError(t *testing.T) {
	testutil.AssertEqual(t, isPrintableError(errors.New("boom")), true)
	testutil.AssertEqual(t, isPrintableError(flag.ErrHelp), false)
	testutil.AssertEqual(t, isPrintableError(ErrExitVersion), false)
	testutil.AssertEqual(t, isPrintableError(fmt.Errorf("%w: no key", ErrInvalidArgs)), true)
}

func TestEnvLogf(t *testing.T) {
	var stderr bytes.Buffer
	env := &Env{Stderr: &stderr}
	env.Logf("hello %s", "there")
	if !strings.Contains(stderr.String(), "hello there") {
		t.Fatalf("stderr must contain logged line, got %q", stderr.String())
	}
}

func TestGetEnv(t *testing.T) {
	env := &Env{Args: []string{"a"}}
	if got := GetEnv(WithEnv(context.Background(), env)); got != env {
		t.Fatalf("GetEnv returned %p, want %p", got, env)
	}
	if GetEnv(context.Background()) == nil {
		t.Fatal("GetEnv must fall back to the OS environment")
	}
}

func TestParseDocComment(t *testing.T) {
	const src = `// Copyright header.

/*
Quizserve serves quizzes.

# Usage

	$ quizserve
*/
package main

/*
ignored
*/
`
	want := "Quizserve serves quizzes.\n\n# Usage\n\n\t$ quizserve\n"
	testutil.AssertEqual(t, parseDocComment([]byte(src)), want)
}
