package config

import (
	"errors"

	"github.com/tidwall/gjson"
)

// parseJSON parses a JSON config. When key is set the config is read from
// that top-level key, and a missing key yields a nil Raw.
func parseJSON(data []byte, key string) (*Raw, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if key != "" {
		root = root.Get(gjson.Escape(key))
		if !root.Exists() {
			return nil, nil
		}
	}
	if !root.IsObject() {
		return nil, errors.New("configuration should be an object")
	}

	raw := &Raw{}
	if days := root.Get("days"); days.Exists() {
		raw.HasDays = true
		raw.Days = days.Value()
	}
	if patterns := root.Get("patterns"); patterns.Exists() {
		raw.HasPatterns = true
		if !patterns.IsObject() {
			return nil, errors.New("patterns should be an object")
		}
		patterns.ForEach(func(k, v gjson.Result) bool {
			raw.Patterns = append(raw.Patterns, Entry{Pattern: k.String(), Value: v.Value()})
			return true
		})
	}
	return raw, nil
}
