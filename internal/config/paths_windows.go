//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	programData := os.Getenv("ProgramData")
	return []string{
		filepath.Join(home, ".hwinfo", "config.yaml"),
		filepath.Join(programData, "hwinfo", "config.yaml"),
	}
}
