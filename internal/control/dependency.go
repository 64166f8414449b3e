package control

import "strings"

// Clause is one comma-separated dependency clause, e.g.
// "libc6 (>= 2.34) | libc6-compat". Each entry is an alternative; the
// resolver leaves the clause alone if any alternative is already wanted,
// and otherwise enqueues Alternatives[0], never a later one.
type Clause struct {
	Alternatives []string
}

// ParseDependency splits a Depends/Pre-Depends field into its clauses,
// stripping version constraints ("(>= 2.34)") and architecture
// qualifiers (":any", ":native") since this tool does no version
// resolution (spec Non-goals).
func ParseDependency(raw string) []Clause {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var clauses []Clause
	for _, part := range strings.Split(raw, ",") {
		alts := strings.Split(part, "|")
		clause := Clause{}
		for _, alt := range alts {
			name := packageName(alt)
			if name == "" {
				continue
			}
			clause.Alternatives = append(clause.Alternatives, name)
		}
		if len(clause.Alternatives) > 0 {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// packageName extracts the bare package name from one alternative of a
// dependency clause, discarding any "(constraint)" and ":arch" suffix.
func packageName(alt string) string {
	alt = strings.TrimSpace(alt)
	if i := strings.Index(alt, "("); i >= 0 {
		alt = alt[:i]
	}
	alt = strings.TrimSpace(alt)
	if i := strings.Index(alt, ":"); i >= 0 {
		alt = alt[:i]
	}
	return strings.TrimSpace(alt)
}
