package control

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDependencyStripsVersionsAndArch(t *testing.T) {
	clauses := ParseDependency("libc6 (>= 2.34), libgcc-s1:amd64 (>= 3.0)")
	require.Len(t, clauses, 2)
	require.Equal(t, []string{"libc6"}, clauses[0].Alternatives)
	require.Equal(t, []string{"libgcc-s1"}, clauses[1].Alternatives)
}

func TestParseDependencyAlternatives(t *testing.T) {
	clauses := ParseDependency("libc6 (>= 2.34) | libc6-compat")
	require.Len(t, clauses, 1)
	require.Equal(t, []string{"libc6", "libc6-compat"}, clauses[0].Alternatives)
}

func TestParseDependencyEmpty(t *testing.T) {
	require.Nil(t, ParseDependency(""))
	require.Nil(t, ParseDependency("   "))
}
