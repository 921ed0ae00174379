package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Output writes structured results as JSON or YAML, optionally filtered through a jq expression
type Output struct {
	out    io.Writer
	format config.OutputFormat
	jq     string
}

// NewOutput creates an output for the configured format
func NewOutput(out io.Writer, format config.OutputFormat, jq string) *Output {
	if format == "" {
		format = config.OutputTable
	}
	return &Output{out: out, format: format, jq: jq}
}

// Structured reports whether results are printed as data instead of tables
func (o *Output) Structured() bool {
	return o.format != config.OutputTable || o.jq != ""
}

// Write prints v in the configured format
func (o *Output) Write(v any) error {
	doc, err := normalize(v)
	if err != nil {
		return err
	}

	if o.jq != "" {
		results, err := applyJQ(o.jq, doc)
		if err != nil {
			return err
		}
		// jq output is JSON unless yaml was asked for explicitly
		for _, r := range results {
			if err := o.encode(r, o.format == config.OutputYAML); err != nil {
				return err
			}
		}
		return nil
	}
	return o.encode(doc, o.format == config.OutputYAML)
}

func (o *Output) encode(v any, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(o.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	if s, ok := v.(string); ok && o.jq != "" {
		_, err := fmt.Fprintln(o.out, s)
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(o.out, string(data))
	return err
}

// normalize round-trips v through JSON so yaml and jq see the same document,
// with addresses and hashes as hex strings.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return doc, nil
}

func applyJQ(filter string, doc any) ([]any, error) {
	query, err := gojq.Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
	}

	var results []any
	iter := code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq filter %q: %w", filter, err)
		}
		results = append(results, v)
	}
	return results, nil
}
