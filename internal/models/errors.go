package models

// ErrorTag identifies the category of failure recorded on a RunContext.
// Tags carry no payload; a run has failed when any tag is present.
type ErrorTag string

const (
	// Environment: the working directory is not inside a git repository
	ErrGitRepo ErrorTag = "GitRepoError"

	// Retrieval: git history could not be queried
	ErrGetRecentFiles ErrorTag = "GetRecentFilesError"

	// A spawned command failed
	ErrTask ErrorTag = "TaskError"
)
