// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// ParseFormat validates a console format name. Empty selects text.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return types.FormatText, nil
	case types.FormatText, types.FormatJSON, types.FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q: use text, json, or yaml", s)
}

// Print writes rs to w, one record per line for text and JSON, one YAML
// document per record for YAML. Failed results print as an empty mapping.
func Print(w io.Writer, rs types.ResultSet, format types.OutputFormat) error {
	switch format {
	case types.FormatText, "":
		for _, r := range rs {
			if _, err := fmt.Fprintln(w, FormatText(r)); err != nil {
				return err
			}
		}
		return nil
	case types.FormatJSON:
		enc := json.NewEncoder(w)
		for _, r := range rs {
			if err := enc.Encode(mapping(r)); err != nil {
				return err
			}
		}
		return nil
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		for _, r := range rs {
			if err := enc.Encode(mapping(r)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", format)
}

// FormatText renders a result as a single-line key/value dump:
//
//	{Title: "Covid Vaccine Study", Non-academic Author(s): "...", ...}
func FormatText(r types.Result) string {
	if !r.OK() {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range types.FieldNames {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strconv.Quote(r.Record.Get(name)))
	}
	b.WriteByte('}')
	return b.String()
}

// mapping returns the value to serialize for a result: the record, or an
// empty mapping for a failed result.
func mapping(r types.Result) any {
	if !r.OK() {
		return struct{}{}
	}
	return r.Record
}
