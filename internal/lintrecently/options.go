package lintrecently

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spachava753/lint-recently/internal/config"
	"github.com/spachava753/lint-recently/internal/models"
)

// DefaultOptions returns options with unlimited concurrency and chunking at
// DefaultMaxArgLength.
func DefaultOptions() models.Options {
	return models.Options{
		Concurrent:   0,
		MaxArgLength: DefaultMaxArgLength(),
	}
}

// DefaultMaxArgLength is half of the platform's command line length limit.
func DefaultMaxArgLength() int {
	switch runtime.GOOS {
	case "darwin":
		return 262144 / 2
	case "windows":
		return 8191 / 2
	default:
		return 131072 / 2
	}
}

// ParseConcurrent converts the --concurrent flag value: "true" for unlimited,
// "false" for serial, or a positive task count.
func ParseConcurrent(value string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "":
		return 0, nil
	case "false":
		return 1, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: concurrent must be true, false, or a positive integer, got %q", config.ErrInvalidOptions, value)
	}
	return n, nil
}
