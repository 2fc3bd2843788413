package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %s (use yaml or json)", s)
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Fprint serializes v to w in the given format.
func Fprint(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
