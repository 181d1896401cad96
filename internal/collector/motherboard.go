// Motherboard collector: gathers baseboard, firmware and chassis identity.
// Uses ghw for the DMI/SMBIOS tables.
package collector

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jaypipes/ghw"
	"go.uber.org/multierr"

	"github.com/Guliveer/hwinfo/internal/models"
)

// MotherboardCollector collects baseboard information.
type MotherboardCollector struct {
	goos      string
	baseboard func() (*ghw.BaseboardInfo, error)
	bios      func() (*ghw.BIOSInfo, error)
	chassis   func() (*ghw.ChassisInfo, error)
}

// NewMotherboardCollector creates a new motherboard collector.
func NewMotherboardCollector() *MotherboardCollector {
	return &MotherboardCollector{
		goos: runtime.GOOS,
		baseboard: func() (*ghw.BaseboardInfo, error) {
			return ghw.Baseboard(ghw.WithDisableWarnings())
		},
		bios: func() (*ghw.BIOSInfo, error) {
			return ghw.BIOS(ghw.WithDisableWarnings())
		},
		chassis: func() (*ghw.ChassisInfo, error) {
			return ghw.Chassis(ghw.WithDisableWarnings())
		},
	}
}

// Name returns the collector identifier.
func (c *MotherboardCollector) Name() models.Component { return models.Motherboard }

// IsAvailable returns true on Linux and Windows, where the DMI tables are exposed.
func (c *MotherboardCollector) IsAvailable() bool {
	return c.goos == "linux" || c.goos == "windows"
}

// Collect gathers baseboard identity and, at the detailed level, the BIOS
// and chassis tables.
func (c *MotherboardCollector) Collect(_ context.Context, verbosity models.Verbosity) (any, error) {
	board, err := c.baseboard()
	if err != nil {
		return nil, fmt.Errorf("baseboard: %w", err)
	}

	result := MotherboardInfo{
		Manufacturer: known(board.Vendor),
		Product:      known(board.Product),
	}
	if verbosity == models.Minimal {
		return result, nil
	}
	result.Version = known(board.Version)
	result.SerialNumber = known(board.SerialNumber)
	result.AssetTag = known(board.AssetTag)

	var errs error
	if bios, err := c.bios(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("bios: %w", err))
	} else {
		result.BIOSVendor = known(bios.Vendor)
		result.BIOSVersion = known(bios.Version)
		result.BIOSDate = known(bios.Date)
	}

	if chassis, err := c.chassis(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("chassis: %w", err))
	} else {
		result.ChassisType = known(chassis.TypeDescription)
		if result.ChassisType == "" {
			result.ChassisType = known(chassis.Type)
		}
		result.ChassisVendor = known(chassis.Vendor)
		result.ChassisSerialNumber = known(chassis.SerialNumber)
	}

	return result, errs
}
