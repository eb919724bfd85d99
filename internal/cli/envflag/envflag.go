// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag defines flags whose defaults can be overridden by
// environment variables.
package envflag

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

// Type is a constraint that permits only types supported by envflag package.
type Type interface {
	bool | string | int | time.Duration
}

// Value defines a flag with the given name, default value, and usage on fs.
//
// If the environment variable envName, looked up with getenv, is set to a
// value that parses as T, it replaces the default. Explicitly passed flags
// take precedence over both.
func Value[T Type](fs *flag.FlagSet, getenv func(string) string, name, envName string, value T, usage string) *T {
	p := new(T)
	*p = value
	fv := &flagValue[T]{p: p}
	if s := getenv(envName); s != "" {
		// Invalid environment values are ignored and the default is kept.
		fv.Set(s)
	}
	fs.Var(fv, name, usage+" Can be overridden by "+envName+" environment variable.")
	return p
}

type flagValue[T Type] struct{ p *T }

func (f *flagValue[T]) String() string {
	if f.p == nil {
		return ""
	}
	return fmt.Sprint(*f.p)
}

func (f *flagValue[T]) Set(s string) error {
	switch p := any(f.p).(type) {
	case *bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*p = v
	case *string:
		*p = s
	case *int:
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*p = v
	case *time.Duration:
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

// IsBoolFlag makes boolean flags usable without a value, like -verbose.
func (f *flagValue[T]) IsBoolFlag() bool {
	_, ok := any(f.p).(*bool)
	return ok
}
