package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spachava753/lint-recently/internal/models"
)

// PackageName is the key read from package.json.
const PackageName = "lint-recently"

// SearchPlaces are the file names looked up in each directory, in order.
var SearchPlaces = []string{
	".lintrecentlyrc.json",
	".lintrecentlyrc.yaml",
	".lintrecentlyrc.yml",
	".lintrecentlyrc.toml",
	"package.json",
}

var (
	// ErrConfigNotFound is returned when no config file exists.
	ErrConfigNotFound = errors.New("config could not be found")
	// ErrInvalidOptions is returned when run options fail validation.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrInvalidConfig is returned when a config fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Entry is one pattern with its undecoded command value.
type Entry struct {
	Pattern string
	Value   any
}

// Raw is a parsed but unvalidated config. Patterns keep document order.
type Raw struct {
	Days        any
	HasDays     bool
	Patterns    []Entry
	HasPatterns bool
}

// FromConfig wraps an already typed config so it goes through Validate like a
// loaded one.
func FromConfig(cfg models.Config) *Raw {
	raw := &Raw{HasPatterns: true}
	if cfg.Days != 0 {
		raw.HasDays = true
		raw.Days = cfg.Days
	}
	for _, p := range cfg.Patterns {
		raw.Patterns = append(raw.Patterns, Entry{Pattern: p.Pattern, Value: p.Commands})
	}
	return raw
}

// Load reads and parses the config file at path.
func Load(path string) (*Raw, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}
	return LoadFS(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

// LoadFS reads and parses the config file name from fsys. The format is
// chosen by extension; package.json is read from its lint-recently key.
func LoadFS(fsys fs.FS, name string) (*Raw, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrConfigNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var raw *Raw
	switch base := path.Base(name); {
	case base == "package.json":
		raw, err = parseJSON(data, PackageName)
		if err == nil && raw == nil {
			return nil, fmt.Errorf("%s: no %q key: %w", name, PackageName, ErrConfigNotFound)
		}
	case strings.HasSuffix(base, ".json"):
		raw, err = parseJSON(data, "")
	case strings.HasSuffix(base, ".toml"):
		raw, err = parseTOML(data)
	default:
		raw, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", name, err)
	}
	return raw, nil
}

// Search looks for a config file in dir and each of its parents, returning
// the parsed config and the path it was read from.
func Search(dir string) (*Raw, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("getting absolute path: %w", err)
	}

	for {
		fsys := os.DirFS(dir)
		for _, name := range SearchPlaces {
			if _, err := fs.Stat(fsys, name); err != nil {
				continue
			}
			raw, err := LoadFS(fsys, name)
			if errors.Is(err, ErrConfigNotFound) {
				slog.Debug("skipping package.json without config key", "dir", dir)
				continue
			}
			if err != nil {
				return nil, "", err
			}
			return raw, filepath.Join(dir, name), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", ErrConfigNotFound
		}
		dir = parent
	}
}
