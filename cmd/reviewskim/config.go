package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// yamlConfig resolves flag defaults from a YAML document of flag names to
// values. Keys may spell dashes as underscores; list values become
// comma-separated flag values.
//
//	db: /var/lib/reviewskim.db
//	rps: 0.5
//	years: [2013, 2012]
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := values[flag.Name]
		if !ok {
			raw, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || raw == nil {
			return nil, nil
		}
		if list, ok := raw.([]any); ok {
			parts := make([]string, len(list))
			for i, v := range list {
				parts[i] = fmt.Sprint(v)
			}
			return strings.Join(parts, ","), nil
		}
		return fmt.Sprint(raw), nil
	}
	return f, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("REVIEWSKIM_CONFIG"); path != "" {
		return path
	}
	return filepath.Join("~", ".reviewskim", "config.yaml")
}
