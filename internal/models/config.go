package models

// DefaultDays is the recency window used when the config does not set one.
const DefaultDays = 3

// PatternCommands binds one glob pattern to the commands run against its matches.
type PatternCommands struct {
	Pattern  string   `json:"pattern"`
	Commands []string `json:"commands"`
}

// Config is the validated lint-recently configuration.
// Patterns keep the order in which they were declared.
type Config struct {
	Days     int               `json:"days"`
	Patterns []PatternCommands `json:"patterns"`
}

// Shell selects how commands are executed. When Enabled is false the command
// string is tokenized and run directly. Path overrides the default shell.
type Shell struct {
	Enabled bool
	Path    string
}

// Options are the run options supplied by the CLI or an API caller.
type Options struct {
	// Concurrent caps how many sibling task groups run at once.
	// 0 means unlimited, 1 means serial.
	Concurrent int

	// Cwd is the directory the run is invoked from.
	Cwd string

	Debug bool
	Quiet bool

	// Relative passes cwd-relative file paths to commands instead of absolute ones.
	Relative bool

	Shell   Shell
	Verbose bool

	// MaxArgLength bounds the joined file argument string; 0 disables chunking.
	MaxArgLength int

	// Config is used as-is when set; otherwise ConfigPath or discovery is used.
	Config     *Config
	ConfigPath string
}
