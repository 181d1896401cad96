package collector

import (
	"runtime"
	"strings"
)

// known blanks the placeholder values hardware tables use for missing data.
func known(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "unknown", "none", "n/a", "not specified", "to be filled by o.e.m.", "default string", "[not supported]":
		return ""
	}
	return s
}

// normalizeArch returns the machine architecture, falling back to the one
// the binary was built for.
func normalizeArch(kernelArch string) string {
	if kernelArch = strings.TrimSpace(kernelArch); kernelArch != "" {
		return kernelArch
	}
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "i386"
	default:
		return runtime.GOARCH
	}
}
