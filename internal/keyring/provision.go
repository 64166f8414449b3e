// Package keyring provisions the OpenPGP trust anchor used to verify a
// suite's Release file. The anchor must never come from the repository it
// verifies, so the mapping below is a small, built-in, trusted table rather
// than anything fetched or configured at runtime.
package keyring

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysroot-tools/sysroot-bootstrap/internal/archive"
	"github.com/sysroot-tools/sysroot-bootstrap/internal/fetch"
)

// Source names the out-of-band-trusted archive a suite's signing keyring is
// shipped in, and the path of the keyring file within it.
type Source struct {
	// URL of a package (or tarball) containing the keyring, fetched via an
	// out-of-band-trusted distribution-governance host, never the mirror
	// being verified.
	URL string
	// PathInArchive is the member name to extract from URL once
	// decompressed, e.g. "usr/share/keyrings/ubuntu-archive-keyring.gpg".
	PathInArchive string
}

// suiteSources is the built-in suite-to-keyring-source table. Suites not
// listed here are a fatal input error (spec §4.D): the trust anchor must
// not be discoverable or overridable by an untrusted party.
var suiteSources = map[string]Source{
	"jammy": {
		URL:           "http://archive.ubuntu.com/ubuntu/pool/main/u/ubuntu-keyring/ubuntu-keyring_2021.03.26_all.deb",
		PathInArchive: "usr/share/keyrings/ubuntu-archive-keyring.gpg",
	},
	"noble": {
		URL:           "http://archive.ubuntu.com/ubuntu/pool/main/u/ubuntu-keyring/ubuntu-keyring_2023.11.28.1_all.deb",
		PathInArchive: "usr/share/keyrings/ubuntu-archive-keyring.gpg",
	},
	"bookworm": {
		URL:           "http://deb.debian.org/debian/pool/main/d/debian-archive-keyring/debian-archive-keyring_2023.3_all.deb",
		PathInArchive: "usr/share/keyrings/debian-archive-keyring.gpg",
	},
	"bullseye": {
		URL:           "http://deb.debian.org/debian/pool/main/d/debian-archive-keyring/debian-archive-keyring_2021.1.1_all.deb",
		PathInArchive: "usr/share/keyrings/debian-archive-keyring.gpg",
	},
}

// Lookup returns the keyring Source for a known suite, or false if the
// suite is not in the built-in table.
func Lookup(suite string) (Source, bool) {
	src, ok := suiteSources[suite]
	return src, ok
}

// Register adds or overrides the keyring Source for suite. Production
// code never calls this — the table is meant to be fixed and trusted
// (§4.D) — it exists so tests (including bootstrap's end-to-end test) can
// point a suite at a fake server without a file-based override mechanism
// an attacker could also use.
func Register(suite string, src Source) {
	suiteSources[suite] = src
}

// Provision fetches the keyring source archive for suite and extracts
// PathInArchive into scratchRoot, returning the local path of the
// extracted keyring file ready for internal/verify.LoadKeyring.
func Provision(ctx context.Context, suite string, f *fetch.Fetcher, scratchRoot string) (string, error) {
	src, ok := Lookup(suite)
	if !ok {
		return "", fmt.Errorf("unknown suite %q: no trusted keyring source", suite)
	}

	debPath, err := f.Fetch(ctx, src.URL)
	if err != nil {
		return "", fmt.Errorf("fetching keyring source %q: %w", src.URL, err)
	}

	deb, err := os.Open(debPath)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", debPath, err)
	}
	defer deb.Close()

	arMembers, err := archive.ReadAr(deb)
	if err != nil {
		return "", fmt.Errorf("reading %q as ar archive: %w", debPath, err)
	}

	dataMember, err := archive.DataTarMember(arMembers)
	if err != nil {
		return "", fmt.Errorf("locating data.tar in %q: %w", src.URL, err)
	}

	tarStream, err := archive.Decompress(bytes.NewReader(dataMember.Data), dataMember.Name)
	if err != nil {
		return "", fmt.Errorf("decompressing %q: %w", dataMember.Name, err)
	}

	extractDir := filepath.Join(scratchRoot, "keyring-"+suite)
	if err := archive.ExtractTar(tarStream, extractDir); err != nil {
		return "", fmt.Errorf("extracting data.tar for keyring: %w", err)
	}

	keyringPath := filepath.Join(extractDir, src.PathInArchive)
	if _, err := os.Stat(keyringPath); err != nil {
		return "", fmt.Errorf("keyring file %q not found in %q: %w", src.PathInArchive, src.URL, err)
	}
	return keyringPath, nil
}
