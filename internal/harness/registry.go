package harness

import (
	"sort"
	"strings"
)

// Scenario pairs a registered scenario name with its body.
type Scenario struct {
	Name string
	Fn   Func
}

var scenarios = make(map[string]Func)

// Register registers a scenario under the given name. This should be called
// during package init; registering the same name twice panics, since it
// can only be a programming mistake.
func Register(name string, fn Func) {
	if _, dup := scenarios[name]; dup {
		panic("harness: duplicate scenario registration: " + name)
	}
	scenarios[name] = fn
}

// Scenarios returns every registered scenario, sorted by name.
func Scenarios() []Scenario {
	out := make([]Scenario, 0, len(scenarios))
	for name, fn := range scenarios {
		out = append(out, Scenario{Name: name, Fn: fn})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Match returns the registered scenarios whose names contain pattern,
// case-insensitively. An empty pattern matches everything.
func Match(pattern string) []Scenario {
	if pattern == "" {
		return Scenarios()
	}
	lower := strings.ToLower(pattern)
	var out []Scenario
	for _, sc := range Scenarios() {
		if strings.Contains(strings.ToLower(sc.Name), lower) {
			out = append(out, sc)
		}
	}
	return out
}
