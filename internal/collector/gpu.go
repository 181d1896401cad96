// GPU collector: gathers display adapters from the PCI bus.
// Uses ghw for the adapter inventory and the platform vendor tools
// (nvidia-smi) for memory, driver version and serial numbers.
package collector

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jaypipes/ghw"
	"go.uber.org/multierr"

	"github.com/Guliveer/hwinfo/internal/models"
	"github.com/Guliveer/hwinfo/internal/platform"
)

// GPUCollector collects display adapter information.
type GPUCollector struct {
	goos     string
	gpu      func() (*ghw.GPUInfo, error)
	platform platform.Platform
}

// NewGPUCollector creates a new GPU collector that enriches adapters with
// the given platform's vendor-tool details.
func NewGPUCollector(p platform.Platform) *GPUCollector {
	if p == nil {
		p = &platform.StubPlatform{}
	}
	return &GPUCollector{
		goos: runtime.GOOS,
		gpu: func() (*ghw.GPUInfo, error) {
			return ghw.GPU(ghw.WithDisableWarnings())
		},
		platform: p,
	}
}

// Name returns the collector identifier.
func (c *GPUCollector) Name() models.Component { return models.GPU }

// IsAvailable returns false on macOS, where PCI display adapters cannot be
// enumerated.
func (c *GPUCollector) IsAvailable() bool { return c.goos != "darwin" }

// Collect gathers the display adapters. Vendor tools are only queried at the
// detailed level. When the PCI inventory fails but the vendor tool reports
// adapters, those are returned together with the inventory error.
func (c *GPUCollector) Collect(ctx context.Context, verbosity models.Verbosity) (any, error) {
	info, gpuErr := c.gpu()
	if gpuErr != nil {
		gpuErr = fmt.Errorf("pci display adapters: %w", gpuErr)
		if verbosity == models.Minimal {
			return nil, gpuErr
		}
	}

	var adapters []GPUAdapter
	if info != nil {
		for _, card := range info.GraphicsCards {
			if card != nil {
				adapters = append(adapters, adapterFromCard(card))
			}
		}
	}

	if verbosity == models.Minimal {
		return gpuResult(adapters, models.Minimal), nil
	}

	var errs error
	details, err := c.platform.GPUDetails(ctx)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	adapters = mergeGPUDetails(adapters, details)

	if gpuErr != nil {
		if len(adapters) == 0 {
			return nil, multierr.Append(gpuErr, errs)
		}
		errs = multierr.Append(gpuErr, errs)
	}
	return gpuResult(adapters, verbosity), errs
}

func gpuResult(adapters []GPUAdapter, verbosity models.Verbosity) GPUInfo {
	if adapters == nil {
		adapters = []GPUAdapter{}
	}
	if verbosity == models.Minimal {
		for i := range adapters {
			adapters[i] = GPUAdapter{Name: adapters[i].Name}
		}
	}
	return GPUInfo{Count: len(adapters), Adapters: adapters}
}

func adapterFromCard(card *ghw.GraphicsCard) GPUAdapter {
	a := GPUAdapter{Address: card.Address}
	dev := card.DeviceInfo
	if dev == nil {
		a.Name = fmt.Sprintf("Display adapter %d", card.Index)
		return a
	}
	if a.Address == "" {
		a.Address = dev.Address
	}
	a.Driver = dev.Driver
	if dev.Vendor != nil {
		a.Vendor = known(dev.Vendor.Name)
		a.VendorID = dev.Vendor.ID
	}
	if dev.Product != nil {
		a.Name = known(dev.Product.Name)
		a.ProductID = dev.Product.ID
	}
	if a.Name == "" {
		a.Name = fmt.Sprintf("Display adapter %d", card.Index)
	}
	return a
}

// mergeGPUDetails attaches vendor-tool details to the adapter with the same
// PCI address. Details without a matching adapter are appended.
func mergeGPUDetails(adapters []GPUAdapter, details []platform.GPUDetail) []GPUAdapter {
	for _, d := range details {
		matched := false
		for i := range adapters {
			if d.BusID == "" || platform.NormalizeBusID(adapters[i].Address) != d.BusID {
				continue
			}
			adapters[i].MemoryMiB = d.MemoryMiB
			adapters[i].DriverVersion = d.DriverVersion
			adapters[i].SerialNumber = d.SerialNumber
			matched = true
			break
		}
		if !matched {
			adapters = append(adapters, GPUAdapter{
				Name:          d.Name,
				Vendor:        d.Vendor,
				Address:       d.BusID,
				MemoryMiB:     d.MemoryMiB,
				DriverVersion: d.DriverVersion,
				SerialNumber:  d.SerialNumber,
			})
		}
	}
	return adapters
}
