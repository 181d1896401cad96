// CPU collector: gathers processor model, topology and capabilities.
// Uses gopsutil for cross-platform CPU information.
package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/multierr"

	"github.com/Guliveer/hwinfo/internal/models"
)

// CPUCollector collects processor information.
type CPUCollector struct {
	info   func(context.Context) ([]cpu.InfoStat, error)
	counts func(context.Context, bool) (int, error)
	arch   func() (string, error)
}

// NewCPUCollector creates a new CPU collector.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{
		info:   cpu.InfoWithContext,
		counts: cpu.CountsWithContext,
		arch:   host.KernelArch,
	}
}

// Name returns the collector identifier.
func (c *CPUCollector) Name() models.Component { return models.CPU }

// IsAvailable returns true; CPU information is available on all platforms.
func (c *CPUCollector) IsAvailable() bool { return true }

// Collect gathers processor information. Per-package details are only
// aggregated at the detailed level.
func (c *CPUCollector) Collect(ctx context.Context, verbosity models.Verbosity) (any, error) {
	infos, err := c.info(ctx)
	if err != nil {
		return nil, fmt.Errorf("cpu info: %w", err)
	}
	if len(infos) == 0 {
		return nil, errors.New("cpu info: no processors reported")
	}

	var errs error
	first := infos[0]
	result := CPUInfo{Name: strings.TrimSpace(first.ModelName)}

	if result.Cores, err = c.counts(ctx, false); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("physical core count: %w", err))
	}
	if result.Threads, err = c.counts(ctx, true); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("logical core count: %w", err))
	}
	arch, err := c.arch()
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("architecture: %w", err))
	}
	result.Architecture = normalizeArch(arch)

	if verbosity == models.Minimal {
		return result, errs
	}

	result.Vendor = first.VendorID
	result.Family = first.Family
	result.Model = first.Model
	result.Stepping = int(first.Stepping)
	result.CacheSizeKB = int(first.CacheSize)
	result.Microcode = first.Microcode
	result.Virtualization = virtualizationExtension(first.Flags)

	packages := make(map[string]bool)
	for _, info := range infos {
		packages[info.PhysicalID] = true
		if info.Mhz > result.MaxClockMHz {
			result.MaxClockMHz = info.Mhz
		}
	}
	result.Packages = len(packages)

	return result, errs
}

// virtualizationExtension names the hardware virtualization extension
// advertised in the CPU flags.
func virtualizationExtension(flags []string) string {
	for _, f := range flags {
		switch strings.ToLower(f) {
		case "vmx":
			return "VT-x"
		case "svm":
			return "AMD-V"
		}
	}
	return ""
}
