package models

// Task is one (pattern, chunk) pair ready to be turned into commands.
// It is immutable after creation.
type Task struct {
	Pattern  string
	Commands []string
	FileList []string
}
