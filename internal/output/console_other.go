//go:build !windows

package output

// EnableUTF8Console is a no-op; terminals outside Windows take the UTF-8
// bytes as they are.
func EnableUTF8Console() error { return nil }
