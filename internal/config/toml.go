package config

import (
	"errors"

	"github.com/BurntSushi/toml"
)

// parseTOML reads patterns from the [patterns] table. MetaData.Keys reports
// keys in document order, which fixes the pattern order.
func parseTOML(data []byte) (*Raw, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}

	raw := &Raw{}
	if md.IsDefined("days") {
		raw.HasDays = true
		raw.Days = doc["days"]
	}
	if !md.IsDefined("patterns") {
		return raw, nil
	}

	raw.HasPatterns = true
	table, ok := doc["patterns"].(map[string]any)
	if !ok {
		return nil, errors.New("patterns should be a table")
	}
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "patterns" {
			continue
		}
		raw.Patterns = append(raw.Patterns, Entry{Pattern: key[1], Value: table[key[1]]})
	}
	return raw, nil
}
