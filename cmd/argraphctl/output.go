package main

import (
	"encoding/json"
	"os"

	"github.com/opendebate/argraph/propagate"
)

// printJSON writes v as a single JSON line to stdout, the CLI's stand-in
// for an HTTP JSON response.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}

// result wraps an operation's return value alongside the updated-score
// diff propagation produced, the shape every mutating subcommand prints.
type result struct {
	Value   any                          `json:"value,omitempty"`
	Updated map[string]*propagate.Update `json:"updated,omitempty"`
}

func printResult(value any, updated map[string]*propagate.Update) error {
	return printJSON(result{Value: value, Updated: updated})
}
