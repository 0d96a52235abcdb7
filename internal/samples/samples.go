// Package samples ships a small catalog of classic algorithms in the
// pseudocode dialect, used by the CLI demo mode and as test fixtures.
package samples

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Sample is one catalog entry.
type Sample struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Expected is the known asymptotic bound, shown alongside results.
	Expected string `yaml:"expected"`
	Source   string `yaml:"source"`
}

type catalog struct {
	Samples []Sample `yaml:"samples"`
}

var (
	loadOnce sync.Once
	loaded   catalog
)

func load() *catalog {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(catalogYAML, &loaded); err != nil {
			// the catalog is embedded at build time, a parse failure is a bug
			panic(fmt.Sprintf("samples: bad embedded catalog: %v", err))
		}
	})
	return &loaded
}

// All returns every sample, sorted by name.
func All() []Sample {
	c := load()
	out := make([]Sample, len(c.Samples))
	copy(out, c.Samples)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the sample with the given name, case-insensitively.
func Get(name string) (Sample, error) {
	for _, s := range load().Samples {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	names := make([]string, 0, len(load().Samples))
	for _, s := range load().Samples {
		names = append(names, s.Name)
	}
	return Sample{}, fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(names, ", "))
}
