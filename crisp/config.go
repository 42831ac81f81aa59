package crisp

import "io"

// Config is a function that configures a root environment.
type Config func(env *CEnv) *CVal

// Reader parses a source stream into a sequence of top-level
// expressions.  The parser package provides the standard implementation.
type Reader interface {
	Read(name string, r io.Reader) ([]*CVal, error)
}

// WithReader returns a Config that makes environments use r to parse
// source streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *CEnv) *CVal {
		env.Reader = r
		return Nil()
	}
}

// WithOutput returns a Config that makes the debug form write its rendering
// to w instead of the default, os.Stdout.
func WithOutput(w io.Writer) Config {
	return func(env *CEnv) *CVal {
		env.Output = w
		return Nil()
	}
}
