package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"TaaraAgent/internal/entity"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a policy file. A missing file yields an empty set. The file
// is either a top-level list of policies or a mapping with a "policies" key.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Config{}, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if len(node.Content) == 0 {
		return Config{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var policies []entity.Policy
		if err := root.Decode(&policies); err != nil {
			return Config{}, fmt.Errorf("failed to decode policies: %w", err)
		}
		return Config{Policies: policies}, nil
	case yaml.MappingNode:
		var cfg Config
		if err := root.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode policies: %w", err)
		}
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("policy file must be a list or a mapping")
	}
}
