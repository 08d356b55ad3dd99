package model

import (
	"fmt"
	"strings"
)

// EnvironmentSet is the document written to base_envs_set.json.
// Filenames holds every entry of the base environment directory in
// ascending lexicographic order.
type EnvironmentSet struct {
	Filenames []string `json:"filenames"`
}

// TypeEntry groups every morphology trained under one agent type
// (e.g., a control algorithm family such as "ppo").
type TypeEntry struct {
	Type         string            `json:"type"`
	Morphologies []MorphologyEntry `json:"morphologies"`
}

// MorphologyEntry groups the trained seeds of one body variant.
// Seeds are ordered by seed id according to the SeedOrder in effect.
type MorphologyEntry struct {
	Morphology string      `json:"morphology"`
	Seeds      []SeedEntry `json:"seeds"`
}

// SeedEntry describes one trained policy instance.
type SeedEntry struct {
	// Seed is the digit run captured from the "_s<digits>" suffix of the
	// seed directory name, kept verbatim (leading zeros included).
	Seed string `json:"seed"`

	// Path is the seed directory as the web demo should reference it:
	// the configured policy root joined with the type, morphology and seed
	// directory names, always slash-separated.
	Path string `json:"path"`

	// Name is the first line of the seed's name file without its line
	// terminator. It is the empty string when the file does not exist.
	Name string `json:"name"`
}

// CatalogStats summarizes the size of a policy catalog for CLI output.
type CatalogStats struct {
	Types        int `json:"types"`
	Morphologies int `json:"morphologies"`
	Seeds        int `json:"seeds"`
}

// Stats counts the entries at every level of the catalog.
func Stats(catalog []TypeEntry) CatalogStats {
	stats := CatalogStats{Types: len(catalog)}
	for _, t := range catalog {
		stats.Morphologies += len(t.Morphologies)
		for _, m := range t.Morphologies {
			stats.Seeds += len(m.Seeds)
		}
	}
	return stats
}

// SeedOrder selects how seed ids are compared when ordering the seeds of
// a morphology.
type SeedOrder string

const (
	// SeedOrderNumeric compares seed ids as unbounded non-negative
	// integers, so "a_s2" sorts before "a_s10".
	SeedOrderNumeric SeedOrder = "numeric"

	// SeedOrderLexical compares seed ids as plain text, so "a_s10" sorts
	// before "a_s2".
	SeedOrderLexical SeedOrder = "lexical"
)

// String returns the string representation of SeedOrder.
func (o SeedOrder) String() string {
	return string(o)
}

// IsValid checks whether the SeedOrder value is one of the predefined orders.
func (o SeedOrder) IsValid() bool {
	switch o {
	case SeedOrderNumeric, SeedOrderLexical:
		return true
	default:
		return false
	}
}

// ParseSeedOrder converts a string to a SeedOrder.
// Returns an error if the string does not match any valid order.
func ParseSeedOrder(s string) (SeedOrder, error) {
	order := SeedOrder(strings.ToLower(strings.TrimSpace(s)))
	if !order.IsValid() {
		return "", fmt.Errorf("invalid seed order: %q (valid: numeric, lexical)", s)
	}
	return order, nil
}

// CompareSeedIDs orders two seed ids under the given SeedOrder and returns
// -1, 0 or +1. Both ids are expected to consist of ASCII digits only.
//
// The numeric comparison never converts to a fixed-width integer, so
// arbitrarily long ids cannot overflow: leading zeros are dropped, the
// shorter digit run is the smaller number, and equal-length runs compare
// bytewise.
func CompareSeedIDs(order SeedOrder, a, b string) int {
	if order == SeedOrderLexical {
		return strings.Compare(a, b)
	}

	na := strings.TrimLeft(a, "0")
	nb := strings.TrimLeft(b, "0")
	if len(na) != len(nb) {
		if len(na) < len(nb) {
			return -1
		}
		return 1
	}
	return strings.Compare(na, nb)
}
