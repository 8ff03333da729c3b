// Package grammars gives access to bundled grammars by name.
package grammars

import (
	"slices"

	"github.com/ava12/pegx/grammar"
	"github.com/ava12/pegx/grammars/json"
	"github.com/ava12/pegx/grammars/toml"
)

var bundled = map[string]*grammar.Grammar{
	"json": json.Grammar,
	"toml": toml.Grammar,
}

var descriptions = map[string]map[string]string{
	"json": json.Descriptions,
	"toml": toml.Descriptions,
}

// builtins describes built-in expressions of every grammar.
var builtins = map[string]string{
	"SOI": "start of input",
	"EOI": "end of input",
	"ANY": "any character",
}

// Lookup returns bundled grammar by name.
func Lookup(name string) (*grammar.Grammar, bool) {
	g, found := bundled[name]
	return g, found
}

// Names returns sorted list of bundled grammar names.
func Names() []string {
	names := make([]string, 0, len(bundled))
	for name := range bundled {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describer returns a function replacing rule names found in diagnostics of named grammar
// with readable descriptions, for use with (*pegx.Error).Renamed. Other descriptions are kept.
func Describer(name string) func(string) string {
	d := descriptions[name]
	return func(s string) string {
		if r, found := d[s]; found {
			return r
		}
		if r, found := builtins[s]; found {
			return r
		}
		return s
	}
}
