// Memory collector: gathers physical memory totals and installed modules.
// Uses gopsutil for usage figures and go-smbios for the module table.
package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/siderolabs/go-smbios/smbios"
	"go.uber.org/multierr"

	"github.com/Guliveer/hwinfo/internal/models"
)

// MemoryCollector collects physical memory information.
type MemoryCollector struct {
	virtual func(context.Context) (*mem.VirtualMemoryStat, error)
	swap    func(context.Context) (*mem.SwapMemoryStat, error)
	modules func() ([]MemoryModule, error)
}

// NewMemoryCollector creates a new memory collector. With fast set the
// SMBIOS module table is not decoded.
func NewMemoryCollector(fast bool) *MemoryCollector {
	c := &MemoryCollector{
		virtual: mem.VirtualMemoryWithContext,
		swap:    mem.SwapMemoryWithContext,
		modules: readMemoryModules,
	}
	if fast {
		c.modules = nil
	}
	return c
}

// Name returns the collector identifier.
func (c *MemoryCollector) Name() models.Component { return models.Memory }

// IsAvailable returns true; memory information is available on all platforms.
func (c *MemoryCollector) IsAvailable() bool { return true }

// Collect gathers memory totals and, at the detailed level, swap and the
// populated memory slots.
func (c *MemoryCollector) Collect(ctx context.Context, verbosity models.Verbosity) (any, error) {
	v, err := c.virtual(ctx)
	if err != nil {
		return nil, fmt.Errorf("virtual memory: %w", err)
	}

	result := MemoryInfo{TotalBytes: v.Total}
	if verbosity == models.Minimal {
		return result, nil
	}

	result.Total = humanize.IBytes(v.Total)
	result.AvailableBytes = v.Available
	result.UsedBytes = v.Used
	result.UsedPercent = v.UsedPercent

	var errs error
	if s, err := c.swap(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("swap memory: %w", err))
	} else {
		result.SwapTotalBytes = s.Total
	}

	if c.modules != nil {
		modules, err := c.modules()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("memory modules: %w", err))
		}
		result.Modules = modules
	}
	result.ModuleCount = len(result.Modules)

	return result, errs
}

// readMemoryModules decodes the SMBIOS memory device table (type 17) and
// returns the populated slots.
func readMemoryModules() ([]MemoryModule, error) {
	sm, err := smbios.New()
	if err != nil {
		return nil, err
	}

	var modules []MemoryModule
	for _, md := range sm.MemoryDevices {
		size := strings.TrimSpace(fmt.Sprint(md.Size))
		if emptySlot(size) {
			continue
		}
		modules = append(modules, MemoryModule{
			Locator:      known(md.DeviceLocator),
			BankLocator:  known(md.BankLocator),
			Size:         size,
			Speed:        known(fmt.Sprint(md.Speed)),
			Manufacturer: known(md.Manufacturer),
			PartNumber:   known(md.PartNumber),
			SerialNumber: known(md.SerialNumber),
			AssetTag:     known(md.AssetTag),
		})
	}
	return modules, nil
}

// emptySlot reports whether a memory device size denotes an unpopulated slot.
func emptySlot(size string) bool {
	switch {
	case size == "", size == "0", strings.HasPrefix(size, "0 "):
		return true
	case strings.Contains(strings.ToLower(size), "no module"):
		return true
	}
	return false
}
