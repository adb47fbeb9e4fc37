package models

// Logger receives user-facing status lines. Log is for normal output, Warn
// for recoverable problems, and Error for failures.
type Logger interface {
	Log(msg string)
	Warn(msg string)
	Error(msg string)
}
