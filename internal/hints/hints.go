// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when userDir is known, creating a config there.
func ForConfigNotFound(userDir string) string {
	hint := "use --config /path/to/file.yaml"
	if userDir != "" {
		hint += " or create " + filepath.Join(userDir, "md2docx.yaml")
	}
	return format(hint)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStylesDir returns hints for a rejected custom styles directory.
func ForStylesDir() string {
	return formatHints([]string{
		"--styles-dir must be an existing directory",
		"it may hold profiles/<slug>.yaml and docx/styles.xml",
	})
}

// ForNoInput returns hints when no markdown source was given.
func ForNoInput() string {
	return format("pass a .md file, a directory, or - for stdin; or set input.defaultDir")
}

// ForProfileNotFound lists the profiles that can be selected instead.
func ForProfileNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
