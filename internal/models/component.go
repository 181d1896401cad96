// Package models defines the inventory data structures used throughout hwinfo.
// Collectors produce fixed-shape component structs; these are converted into
// ordered records, assembled into a Report and handed to the renderers.
package models

import (
	"fmt"
	"strings"
)

// Component identifies one hardware domain of the inventory.
type Component string

const (
	System      Component = "system"
	CPU         Component = "cpu"
	Memory      Component = "memory"
	Storage     Component = "storage"
	GPU         Component = "gpu"
	Motherboard Component = "motherboard"
)

// AllSentinel is the selection keyword that stands for every component.
const AllSentinel = "all"

// canonical is the order components appear in a report.
var canonical = []Component{System, CPU, Memory, Storage, GPU, Motherboard}

// AllComponents returns every component in canonical order.
func AllComponents() []Component {
	out := make([]Component, len(canonical))
	copy(out, canonical)
	return out
}

func (c Component) index() int {
	for i, k := range canonical {
		if k == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is a known component.
func (c Component) Valid() bool { return c.index() >= 0 }

// ParseComponent parses a component name (case-insensitive).
func ParseComponent(s string) (Component, error) {
	c := Component(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown component %q (expected one of %s)", s, componentList())
	}
	return c, nil
}

// ParseSelection turns a list of component names into a deduplicated selection
// in canonical order. An empty list, or one containing "all", selects every
// component and is returned as nil.
func ParseSelection(names []string) ([]Component, error) {
	seen := make(map[Component]bool, len(names))
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), AllSentinel) {
			return nil, nil
		}
		c, err := ParseComponent(n)
		if err != nil {
			return nil, err
		}
		seen[c] = true
	}
	if len(seen) == 0 {
		return nil, nil
	}
	out := make([]Component, 0, len(seen))
	for _, c := range canonical {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

func componentList() string {
	names := make([]string, len(canonical))
	for i, c := range canonical {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Verbosity selects how many fields each collector populates.
type Verbosity int

const (
	// Detailed populates the full field set. It is the default.
	Detailed Verbosity = iota
	// Minimal populates only the small canonical subset.
	Minimal
)

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Detailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// ParseVerbosity parses "minimal" or "detailed". An empty string means detailed.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "detailed":
		return Detailed, nil
	case "minimal":
		return Minimal, nil
	default:
		return 0, fmt.Errorf("invalid verbosity %q (expected \"minimal\" or \"detailed\")", s)
	}
}
