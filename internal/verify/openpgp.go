package verify

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

// LoadKeyring reads an OpenPGP public-key bundle (binary or ASCII-armored)
// to be used as a trust anchor.
func LoadKeyring(r io.Reader) (openpgp.EntityList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keyring: %w", err)
	}
	if keyring, err := openpgp.ReadKeyRing(bytes.NewReader(data)); err == nil {
		return keyring, nil
	}
	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing keyring: %w", err)
	}
	return keyring, nil
}

// DetachedSignature verifies a detached (possibly armored) OpenPGP
// signature over data against keyring, e.g. Release against Release.gpg.
func DetachedSignature(data io.Reader, sig io.Reader, keyring openpgp.EntityList) error {
	dataBytes, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("reading signed data: %w", err)
	}
	sigBytes, err := io.ReadAll(sig)
	if err != nil {
		return fmt.Errorf("reading signature: %w", err)
	}

	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(dataBytes), bytes.NewReader(sigBytes), nil); err == nil {
		return nil
	}
	if _, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(dataBytes), bytes.NewReader(sigBytes), nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// ClearSigned verifies a clearsigned document (InRelease) against keyring
// and returns the plaintext it covers.
func ClearSigned(r io.Reader, keyring openpgp.EntityList) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading InRelease: %w", err)
	}

	block, _ := clearsign.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("not a clearsigned document")
	}

	if _, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(block.Bytes), block.ArmoredSignature.Body, nil); err != nil {
		return nil, fmt.Errorf("signature verification failed: %w", err)
	}
	return block.Plaintext, nil
}
