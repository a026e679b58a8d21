package main

import (
	"io"
	"os"
	"time"
)

// defaultDotEnv is read from the working directory when present.
const defaultDotEnv = ".env"

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Environ returns KEY=value pairs, like os.Environ.
	Environ func() []string
	// DotEnv is the dotenv file merged under the process environment.
	// Empty disables it.
	DotEnv string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		DotEnv:  defaultDotEnv,
	}
}
