package bootstrap

// mirrorForArch picks the primary archive for amd64/i386 and the ports
// archive for every other architecture, per spec.md §3's Mirror selection
// rule. The split is intentionally hard-coded for a small, known arch set
// (see spec.md §9's design note on this being a known simplification).
func mirrorForArch(arch string) string {
	switch arch {
	case "amd64", "i386":
		return "http://archive.ubuntu.com/ubuntu"
	default:
		return "http://ports.ubuntu.com/ubuntu-ports"
	}
}
