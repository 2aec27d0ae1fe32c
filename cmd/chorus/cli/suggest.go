// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestionDistance caps how different a string can be from the
// input before we stop suggesting it.
const maxSuggestionDistance = 3

// suggestCommand returns the name of the closest matching subcommand,
// or "" if nothing is close enough to be a plausible typo.
func suggestCommand(input string, commands []*Command) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, cmd := range commands {
		d := levenshtein(input, cmd.Name)
		if d < bestDistance {
			best = cmd.Name
			bestDistance = d
		}
	}
	return best
}

// suggestFlag scans args for the first unknown long flag and returns
// the closest defined flag name (with leading dashes), or "".
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	if flagSet == nil {
		return ""
	}

	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if name == "" || flagSet.Lookup(name) != nil {
			continue
		}

		best := ""
		bestDistance := maxSuggestionDistance + 1
		for _, candidate := range defined {
			d := levenshtein(name, candidate)
			if d < bestDistance {
				best = candidate
				bestDistance = d
			}
		}
		if best != "" {
			return "--" + best
		}
	}
	return ""
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min(
				previous[j]+1,      // deletion
				current[j-1]+1,     // insertion
				previous[j-1]+cost, // substitution
			)
		}
		previous, current = current, previous
	}
	return previous[len(b)]
}
