//go:build windows

package output

import "golang.org/x/sys/windows"

const cpUTF8 = 65001

var procSetConsoleOutputCP = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetConsoleOutputCP")

// EnableUTF8Console sets the console output code page to UTF-8.
func EnableUTF8Console() error {
	if err := procSetConsoleOutputCP.Find(); err != nil {
		return err
	}
	if r, _, err := procSetConsoleOutputCP.Call(uintptr(cpUTF8)); r == 0 {
		return err
	}
	return nil
}
