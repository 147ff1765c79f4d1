package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// parseVector reads a vector flag. Values are comma separated, "NxV" repeats
// V N times, and "@path" reads a JSON array from a file.
func parseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if path, ok := strings.CutPrefix(s, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read vector: %w", err)
		}
		var v []float64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse vector %s: %w", path, err)
		}
		return v, nil
	}

	var out []float64
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		count := 1
		if n, v, ok := strings.Cut(tok, "x"); ok {
			c, err := strconv.Atoi(n)
			if err != nil || c < 1 {
				return nil, fmt.Errorf("bad repeat %q", tok)
			}
			count, tok = c, v
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", tok)
		}
		for range count {
			out = append(out, f)
		}
	}
	return out, nil
}

func vectorFlag(cmd *cobra.Command, name string) ([]float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	v, err := parseVector(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return v, nil
}

func wantJSON(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func printList(cmd *cobra.Command, title string, items []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
}
