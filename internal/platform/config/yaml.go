package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a single YAML (or JSON) document from r into target.
// An empty document leaves target untouched.
func DecodeYAML(r io.Reader, target any) error {
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// LoadYAMLFile reads path and decodes it with DecodeYAML. A path of "-"
// reads stdin.
func LoadYAMLFile(path string, target any) error {
	if path == "-" {
		return DecodeYAML(os.Stdin, target)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := DecodeYAML(bytes.NewReader(data), target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
