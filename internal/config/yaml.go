package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spachava753/lint-recently/internal/models"
)

// parseYAML decodes through yaml.Node so pattern order is kept.
func parseYAML(data []byte) (*Raw, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("configuration should not be empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("configuration should be a mapping")
	}

	raw := &Raw{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "days":
			raw.HasDays = true
			if err := value.Decode(&raw.Days); err != nil {
				return nil, fmt.Errorf("days: %w", err)
			}
		case "patterns":
			raw.HasPatterns = true
			if value.Kind != yaml.MappingNode {
				return nil, errors.New("patterns should be a mapping")
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				var v any
				if err := value.Content[j+1].Decode(&v); err != nil {
					return nil, fmt.Errorf("patterns[%s]: %w", value.Content[j].Value, err)
				}
				raw.Patterns = append(raw.Patterns, Entry{Pattern: value.Content[j].Value, Value: v})
			}
		}
	}
	return raw, nil
}

// Format renders cfg as YAML in pattern order.
func Format(cfg models.Config) (string, error) {
	patterns := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range cfg.Patterns {
		value := &yaml.Node{}
		var err error
		if len(p.Commands) == 1 {
			err = value.Encode(p.Commands[0])
		} else {
			err = value.Encode(p.Commands)
		}
		if err != nil {
			return "", fmt.Errorf("encoding commands for %s: %w", p.Pattern, err)
		}
		patterns.Content = append(patterns.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Pattern}, value)
	}

	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "days"},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(cfg.Days)},
			{Kind: yaml.ScalarNode, Value: "patterns"},
			patterns,
		},
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
