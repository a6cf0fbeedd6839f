package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ghodss/yaml"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(raw string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid options: table, json, yaml)", raw)
	}
}

// printer renders a value either as a table or as structured data.
type printer struct {
	w      io.Writer
	format outputFormat
}

// print writes v as JSON or YAML, or calls table for the table format.
func (p printer) print(v any, table func(tw *tabwriter.Writer)) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = p.w.Write(b)
		return err
	default:
		tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

// message prints a status line in table mode only, keeping JSON and YAML
// output parseable.
func (p printer) message(format string, args ...any) {
	if p.format != formatTable {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}
