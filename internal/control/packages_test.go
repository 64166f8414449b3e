package control

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePackages = `Package: libc6
Priority: required
Filename: pool/main/libc6_2.35_amd64.deb
SHA256: aaaa
Depends: libgcc-s1 (>= 3.0)

Package: bash
Priority: required
Filename: pool/main/bash_5.1_amd64.deb
SHA256: bbbb
Pre-Depends: libc6 (>= 2.34)
Description: the GNU Bourne Again SHell
 A folded field
 continues like this.

Package: coreutils
Priority: optional
Filename: pool/main/coreutils_8.32_amd64.deb
SHA256: cccc
Depends: libc6 (>= 2.34) | libc6-compat
`

func TestParsePackagesStanzasAndFolding(t *testing.T) {
	idx, err := ParsePackages(strings.NewReader(samplePackages))
	require.NoError(t, err)

	require.True(t, idx.Exists("libc6"))
	require.True(t, idx.Exists("bash"))
	require.False(t, idx.Exists("zsh"))

	require.Equal(t, "pool/main/bash_5.1_amd64.deb", idx.Field("bash", "Filename"))
	require.Contains(t, idx.Field("bash", "Description"), "continues like this.")
}

func TestPackagesRequiredNames(t *testing.T) {
	idx, err := ParsePackages(strings.NewReader(samplePackages))
	require.NoError(t, err)

	required := idx.RequiredNames()
	require.Equal(t, []string{"libc6", "bash"}, required)
}

func TestPackagesFieldMissing(t *testing.T) {
	idx, err := ParsePackages(strings.NewReader(samplePackages))
	require.NoError(t, err)
	require.Equal(t, "", idx.Field("libc6", "Essential"))
	require.Equal(t, "", idx.Field("nonexistent", "Filename"))
}

// A repeated field within one stanza keeps its first occurrence's value,
// matching how real archives are produced (later duplicate fields in a
// hand-edited or merged index are noise, not an override).
func TestPackagesRepeatedFieldKeepsFirstOccurrence(t *testing.T) {
	const dup = `Package: dupe
Priority: required
Priority: optional
Filename: pool/main/dupe_1.0_amd64.deb
`
	idx, err := ParsePackages(strings.NewReader(dup))
	require.NoError(t, err)
	require.Equal(t, "required", idx.Field("dupe", "Priority"))
}
