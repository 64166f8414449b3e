package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blakesmith/ar"
)

// Member is a single file unpacked from an ar archive, kept in memory.
// .deb archives only ever carry three small members (debian-binary,
// control.tar.*, data.tar.*) so buffering is fine.
type Member struct {
	Name string
	Data []byte
}

// ReadAr reads every member of an ar archive (as produced by dpkg, System V
// or BSD variant) into memory. A trailing slash on a member name, as dpkg
// may write it, is stripped before the Member is returned.
func ReadAr(r io.Reader) ([]Member, error) {
	ar := ar.NewReader(r)
	var members []Member
	for {
		hdr, err := ar.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ar header: %w", err)
		}
		data, err := io.ReadAll(ar)
		if err != nil {
			return nil, fmt.Errorf("reading ar member %q: %w", hdr.Name, err)
		}
		members = append(members, Member{
			Name: strings.TrimSuffix(hdr.Name, "/"),
			Data: data,
		})
	}
	return members, nil
}

// DataTarMember returns the single data.tar.* member of a .deb's ar
// members, or an error if none or more than one is present.
func DataTarMember(members []Member) (Member, error) {
	var found []Member
	for _, m := range members {
		if strings.HasPrefix(m.Name, "data.tar") {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return Member{}, fmt.Errorf("no data.tar member in .deb archive")
	case 1:
		return found[0], nil
	default:
		return Member{}, fmt.Errorf("multiple data.tar members in .deb archive")
	}
}

// ExtractAr unpacks every member of an ar archive as a plain file into
// dest, using the member's (slash-stripped) name as the filename. This is
// a generic on-disk extraction primitive; the keyring provisioner and
// installer instead use ReadAr/DataTarMember directly since a .deb's
// members are small enough to keep in memory and neither needs anything
// but the data.tar member.
func ExtractAr(r io.Reader, dest string) error {
	members, err := ReadAr(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, m := range members {
		path := filepath.Join(dest, m.Name)
		if err := os.WriteFile(path, m.Data, 0o644); err != nil {
			return fmt.Errorf("writing ar member %q: %w", m.Name, err)
		}
	}
	return nil
}
