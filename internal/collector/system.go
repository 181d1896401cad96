// System identity collector: gathers hostname, OS and product identity.
// Uses gopsutil for host information and ghw for the SMBIOS product table.
package collector

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/multierr"

	"github.com/Guliveer/hwinfo/internal/models"
)

const osReleasePath = "/etc/os-release"

// SystemCollector collects host and operating system identity.
type SystemCollector struct {
	goos      string
	hostInfo  func(context.Context) (*host.InfoStat, error)
	product   func() (*ghw.ProductInfo, error)
	osRelease func() (map[string]string, error)
}

// NewSystemCollector creates a new system collector.
func NewSystemCollector() *SystemCollector {
	return &SystemCollector{
		goos:     runtime.GOOS,
		hostInfo: host.InfoWithContext,
		product: func() (*ghw.ProductInfo, error) {
			return ghw.Product(ghw.WithDisableWarnings())
		},
		osRelease: readOSRelease,
	}
}

// Name returns the collector identifier.
func (c *SystemCollector) Name() models.Component { return models.System }

// IsAvailable returns true; host information is available on all platforms.
func (c *SystemCollector) IsAvailable() bool { return true }

// Collect gathers system identity. The product table is only read at the
// detailed level.
func (c *SystemCollector) Collect(ctx context.Context, verbosity models.Verbosity) (any, error) {
	info, err := c.hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}

	result := SystemInfo{
		Hostname:     info.Hostname,
		Architecture: normalizeArch(info.KernelArch),
	}
	result.OSName, result.OSVersion = osNameVersion(c.goos, info)

	var errs error
	var release map[string]string
	if c.goos == "linux" && c.osRelease != nil {
		release, err = c.osRelease()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("os-release: %w", err))
		} else {
			if name := release["NAME"]; name != "" {
				result.OSName = name
			}
			if version := release["VERSION_ID"]; version != "" {
				result.OSVersion = version
			}
		}
	}

	if verbosity == models.Minimal {
		return result, errs
	}

	result.PlatformFamily = info.PlatformFamily
	result.KernelVersion = info.KernelVersion
	result.UptimeSeconds = info.Uptime
	if info.BootTime > 0 {
		result.BootTime = time.Unix(int64(info.BootTime), 0).Format(time.RFC3339)
	}
	if info.VirtualizationSystem != "" {
		result.Virtualization = info.VirtualizationSystem
		if info.VirtualizationRole != "" {
			result.Virtualization += " (" + info.VirtualizationRole + ")"
		}
	}

	result.Extra = map[string]any{"processes": info.Procs}
	if pretty := release["PRETTY_NAME"]; pretty != "" {
		result.Extra["os_pretty_name"] = pretty
	}
	if id := release["ID"]; id != "" {
		result.Extra["os_id"] = id
	}

	product, err := c.product()
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("product: %w", err))
		return result, errs
	}
	result.Manufacturer = known(product.Vendor)
	result.ProductName = known(product.Name)
	result.ProductFamily = known(product.Family)
	result.SerialNumber = known(product.SerialNumber)
	result.UUID = normalizeUUID(known(product.UUID))
	if sku := known(product.SKU); sku != "" {
		result.Extra["product_sku"] = sku
	}
	if version := known(product.Version); version != "" {
		result.Extra["product_version"] = version
	}

	return result, errs
}

// osNameVersion derives a friendly OS name and version from host info.
func osNameVersion(goos string, info *host.InfoStat) (string, string) {
	name, version := info.Platform, info.PlatformVersion
	switch goos {
	case "darwin":
		name = "macOS"
	case "windows":
		// PlatformVersion reads "10.0.22631 Build 22631".
		if i := strings.Index(version, " Build"); i > 0 {
			version = version[:i]
		}
	}
	if name == "" {
		name = info.OS
	}
	return name, version
}

func readOSRelease() (map[string]string, error) {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return nil, err
	}
	return parseKeyValueFile(string(data)), nil
}

// parseKeyValueFile parses a file with KEY=VALUE lines (like /etc/os-release).
// Surrounding quotes are stripped from values.
func parseKeyValueFile(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return fields
}

// normalizeUUID returns the canonical lowercase form of a UUID, or the input
// unchanged if it does not parse.
func normalizeUUID(s string) string {
	if s == "" {
		return ""
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return s
	}
	return id.String()
}
