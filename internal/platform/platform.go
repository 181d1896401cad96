// Package platform provides probes for hardware details that the
// cross-platform hardware libraries cannot see, such as vendor GPU tools.
package platform

import "context"

// GPUDetail holds vendor-tool details of one display adapter.
type GPUDetail struct {
	Index         int
	Name          string
	Vendor        string
	MemoryMiB     uint64
	DriverVersion string
	SerialNumber  string
	// BusID is the PCI address without the domain, e.g. "01:00.0".
	BusID string
}

// Platform provides hardware details beyond what ghw and gopsutil offer.
type Platform interface {
	// GPUDetails returns vendor-tool details for the installed GPUs.
	// It returns no details and no error when the vendor tool is absent.
	GPUDetails(ctx context.Context) ([]GPUDetail, error)

	// Name returns the platform name (nvidia-smi, stub).
	Name() string
}
