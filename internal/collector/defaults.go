package collector

import (
	"go.uber.org/zap"

	"github.com/Guliveer/hwinfo/internal/platform"
)

// Defaults returns the collectors for all six components. With fast set
// the slow sub-queries (SMBIOS decode, partition usage, vendor tools) are
// skipped.
func Defaults(logger *zap.Logger, fast bool) []Collector {
	var p platform.Platform = &platform.StubPlatform{}
	if !fast {
		p = platform.New()
	}
	return []Collector{
		NewSystemCollector(),
		NewCPUCollector(),
		NewMemoryCollector(fast),
		NewStorageCollector(logger, fast),
		NewGPUCollector(p),
		NewMotherboardCollector(),
	}
}
