package simulate

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// setParam applies one key=value assignment. The value is read as a YAML
// scalar, so numbers and booleans keep their type and anything else stays
// text. "output_units.range_unit=km" sets a key of a nested object.
func setParam(params map[string]any, assignment string) error {
	key, raw, ok := strings.Cut(assignment, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("parameter %q: want key=value", assignment)
	}

	path := strings.Split(key, ".")
	target := params
	for _, part := range path[:len(path)-1] {
		if part == "" {
			return fmt.Errorf("parameter %q: empty key segment", assignment)
		}
		switch next := target[part].(type) {
		case nil:
			child := map[string]any{}
			target[part] = child
			target = child
		case map[string]any:
			target = next
		default:
			return fmt.Errorf("parameter %q: %s is not an object", assignment, part)
		}
	}
	leaf := path[len(path)-1]
	if leaf == "" {
		return fmt.Errorf("parameter %q: empty key segment", assignment)
	}
	target[leaf] = parseValue(raw)
	return nil
}

func parseValue(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		return raw
	}
	switch value.(type) {
	case map[string]any, []any:
		// Flow collections are only accepted through --file.
		return raw
	}
	return value
}
