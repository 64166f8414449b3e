// Package resolve computes the transitive dependency closure of a set of
// seed package names against a Packages index, per spec §4.F. No version
// constraints, no Conflicts/Breaks/Replaces: a name is either wanted or
// not.
package resolve

import "github.com/sysroot-tools/sysroot-bootstrap/internal/control"

// Resolve returns the transitive closure of seeds over idx, breadth-first.
// A clause is left alone if any of its alternatives is already installed
// or already queued; otherwise its first listed alternative is enqueued,
// whether or not that name is backed by a real stanza (no apt-style
// "pick a substitute that actually exists" policy — §9 declines that).
// Names that never resolve to a stanza (pure virtual/Provides-only names)
// are dropped from the result, since there's nothing to fetch for them.
func Resolve(seeds []string, idx *control.PackagesIndex) []string {
	installed := map[string]bool{}
	var order []string
	var queue []string

	enqueue := func(name string) {
		if name == "" || installed[name] {
			return
		}
		installed[name] = true
		order = append(order, name)
		queue = append(queue, name)
	}

	for _, s := range seeds {
		enqueue(s)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if !idx.Exists(name) {
			continue
		}

		for _, field := range []control.Field{control.FieldPreDepends, control.FieldDepends} {
			for _, clause := range control.ParseDependency(idx.Field(name, field)) {
				if clauseSatisfied(clause, installed) {
					continue
				}
				enqueue(clause.Alternatives[0])
			}
		}
	}

	result := make([]string, 0, len(order))
	for _, name := range order {
		if idx.Exists(name) {
			result = append(result, name)
		}
	}
	return result
}

// clauseSatisfied reports whether any alternative of clause is already
// installed or in flight in the queue (installed is marked true the
// instant a name is enqueued, so one map covers both).
func clauseSatisfied(clause control.Clause, installed map[string]bool) bool {
	for _, alt := range clause.Alternatives {
		if installed[alt] {
			return true
		}
	}
	return false
}
