package main

import _ "embed"

// embeddedConfig holds the default YAML configuration embedded at build time.
// Packagers may replace defaults.yaml to ship site-specific defaults.
//
//go:embed defaults.yaml
var embeddedConfig []byte
