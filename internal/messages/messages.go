// Package messages holds the user-facing status lines printed by lint-recently.
package messages

import "fmt"

// Figures prefixed to status lines.
const (
	FigureError   = "✖"
	FigureInfo    = "ℹ"
	FigureWarning = "⚠"
)

var (
	NotGitRepo           = FigureError + " Current directory is not a git directory!"
	FailedGetRecentFiles = FigureError + " Failed to get recent files!"
	NoRecentFiles        = FigureInfo + " No recent files found."
	NoTasks              = FigureInfo + " No recent files match any configured task."
	ConfigNotFound       = FigureError + " Config could not be found."
)

// IncorrectBraces warns that a pattern was rewritten.
func IncorrectBraces(before, after string) string {
	return fmt.Sprintf("%s Detected incorrect braces with only single value: `%s`. Reformatted as: `%s`\n", FigureWarning, before, after)
}

// InvalidOption reports an option value that failed validation.
func InvalidOption(name, value, reason string) string {
	return fmt.Sprintf("%s Validation Error:\n\n  Invalid value for option '%s': %s\n\n  %s", FigureError, name, value, reason)
}

// ConfigurationError describes one invalid pattern entry.
func ConfigurationError(pattern, reason string, value any) string {
	return fmt.Sprintf("%s Validation Error:\n\n  Invalid value for '%s': %v\n\n  %s", FigureError, pattern, value, reason)
}

// CouldNotParseConfig wraps config validation errors.
func CouldNotParseConfig(details string) string {
	return fmt.Sprintf("%s Could not parse lint-recently config.\n\n%s", FigureError, details)
}

// TaskFailed titles the output of a failed command.
func TaskFailed(command string) string {
	return fmt.Sprintf("%s %s:", FigureError, command)
}

// TaskOutput titles the output of a successful command in verbose mode.
func TaskOutput(command string) string {
	return fmt.Sprintf("%s %s:", FigureInfo, command)
}

// TaskFailedWithoutOutput is appended when a failed command printed nothing.
func TaskFailedWithoutOutput(command, tag string) string {
	return fmt.Sprintf("\n%s %s failed without output (%s).", FigureError, command, tag)
}
