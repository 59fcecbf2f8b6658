// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// LogFormat is the rendering format for log output.
type LogFormat int

const (
	// FormatAuto picks pretty output on an interactive terminal and JSON otherwise.
	FormatAuto LogFormat = iota
	// FormatPretty forces human readable output.
	FormatPretty
	// FormatJSON forces structured JSON output.
	FormatJSON
)

// DetectEnvironment returns the recommended format based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // file descriptors fit in int

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ParseFormat parses a user supplied format flag.
func ParseFormat(flag string) (LogFormat, error) {
	switch flag {
	case "auto", "":
		return FormatAuto, nil
	case "pretty", "text":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, zerr.With(domain.ErrInvalidLogFormat, "format", flag)
	}
}

// ResolveFormat applies a user choice to the auto-detected format.
func ResolveFormat(autoDetected, userChoice LogFormat) LogFormat {
	if userChoice == FormatAuto {
		return autoDetected
	}
	return userChoice
}
