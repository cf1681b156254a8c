package simulate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeOutput prints v in format. YAML keys follow the JSON field names.
func writeOutput(w io.Writer, v any, format string) error {
	switch strings.ToLower(format) {
	case outputYAML:
		var generic any
		if err := runner.Decode(v, &generic); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}
}
