package main

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/chemexpr"
)

// config is the optional YAML configuration file. Command-line flags override
// its settings.
type config struct {
	// Precision is the precision of real literals in bits.
	Precision uint `yaml:"precision"`
	// PTable is the path of a periodic table file to use instead of the
	// standard table.
	PTable string `yaml:"ptable"`
	// Syntaxes maps special syntax names to "expr" or "formula".
	Syntaxes map[string]string `yaml:"syntaxes"`
	// Given are definitions evaluated in order before any input.
	Given []given `yaml:"given"`
}

// given is one name=expr definition.
type given struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// readConfig loads a config file.
func readConfig(path string) (*config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (*config, error) {
	var c config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	for i, g := range c.Given {
		if g.Name == "" {
			return nil, errors.Errorf("given definition %d has no name", i)
		}
	}
	return &c, nil
}

// parseOptions converts the syntax registrations to parse options.
func (c *config) parseOptions() ([]chemexpr.ParseOption, error) {
	names := make([]string, 0, len(c.Syntaxes))
	for k := range c.Syntaxes {
		names = append(names, k)
	}
	sort.Strings(names)
	opts := make([]chemexpr.ParseOption, 0, len(names))
	for _, k := range names {
		kind, ok := chemexpr.ParseSyntaxKind(c.Syntaxes[k])
		if !ok {
			return nil, errors.Errorf("syntax %s: unknown kind %q", k, c.Syntaxes[k])
		}
		opts = append(opts, chemexpr.WithSyntax(k, kind))
	}
	return opts, nil
}

// parseGiven parses a name=expr flag value.
func parseGiven(s string) (given, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 || strings.TrimSpace(d[0]) == "" {
		return given{}, errors.Errorf(`definitions must be "name=expr", not %q`, s)
	}
	return given{Name: strings.TrimSpace(d[0]), Expr: strings.TrimSpace(d[1])}, nil
}
