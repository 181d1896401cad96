// Storage collector: gathers physical disks, their partitions and usage.
// Uses ghw for the block device inventory and gopsutil for filesystem usage.
package collector

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/disk"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Guliveer/hwinfo/internal/models"
)

// StorageCollector collects physical disk information.
type StorageCollector struct {
	logger *zap.Logger
	block  func() (*ghw.BlockInfo, error)
	usage  func(context.Context, string) (*disk.UsageStat, error)
	mounts func(context.Context) ([]disk.PartitionStat, error)
}

// NewStorageCollector creates a new storage collector. With fast set
// partition usage is not queried.
func NewStorageCollector(logger *zap.Logger, fast bool) *StorageCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &StorageCollector{
		logger: logger,
		block: func() (*ghw.BlockInfo, error) {
			return ghw.Block(ghw.WithDisableWarnings())
		},
		usage: disk.UsageWithContext,
		mounts: func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, false)
		},
	}
	if fast {
		c.usage = nil
		c.mounts = nil
	}
	return c
}

// Name returns the collector identifier.
func (c *StorageCollector) Name() models.Component { return models.Storage }

// IsAvailable returns true; block devices are enumerable on all supported platforms.
func (c *StorageCollector) IsAvailable() bool { return true }

// Collect gathers the disk inventory. Per-disk details and partition usage
// are only gathered at the detailed level; inaccessible mount points are
// skipped.
func (c *StorageCollector) Collect(ctx context.Context, verbosity models.Verbosity) (any, error) {
	info, err := c.block()
	if err != nil {
		return nil, fmt.Errorf("block devices: %w", err)
	}

	var result StorageInfo
	for _, d := range info.Disks {
		if d == nil {
			continue
		}
		result.DiskCount++
		result.TotalBytes += d.SizeBytes
	}
	if verbosity == models.Minimal {
		return result, nil
	}
	result.Total = humanize.IBytes(result.TotalBytes)

	var errs error
	var wholeDisk map[string]string
	result.Disks = make([]Disk, 0, result.DiskCount)
	for _, d := range info.Disks {
		if d == nil {
			continue
		}
		out := Disk{
			Name:         d.Name,
			SizeBytes:    d.SizeBytes,
			Model:        known(d.Model),
			Vendor:       known(d.Vendor),
			DriveType:    known(d.DriveType.String()),
			Controller:   known(d.StorageController.String()),
			Removable:    d.IsRemovable,
			SerialNumber: known(d.SerialNumber),
			WWN:          known(d.WWN),
			Partitions:   make([]Partition, 0, len(d.Partitions)),
		}
		for _, p := range d.Partitions {
			if p == nil {
				continue
			}
			part := Partition{
				Name:       p.Name,
				MountPoint: p.MountPoint,
				Filesystem: known(p.Type),
				SizeBytes:  p.SizeBytes,
				ReadOnly:   p.IsReadOnly,
			}
			if p.MountPoint != "" && c.usage != nil {
				if err := ctx.Err(); err != nil {
					errs = multierr.Append(errs, err)
					return result, errs
				}
				u, err := c.usage(ctx, p.MountPoint)
				if err != nil {
					c.logger.Debug("Skipping inaccessible mount point",
						zap.String("mount", p.MountPoint),
						zap.Error(err))
				} else {
					part.UsedBytes = u.Used
					part.FreeBytes = u.Free
					out.UsedBytes += u.Used
					out.FreeBytes += u.Free
				}
			}
			out.Partitions = append(out.Partitions, part)
		}

		// A filesystem made on the whole disk has no partition entry.
		if len(d.Partitions) == 0 && c.usage != nil && c.mounts != nil {
			if wholeDisk == nil {
				wholeDisk = c.mountPoints(ctx)
			}
			if mount := wholeDisk[d.Name]; mount != "" {
				u, err := c.usage(ctx, mount)
				if err != nil {
					c.logger.Debug("Skipping inaccessible mount point",
						zap.String("mount", mount),
						zap.Error(err))
				} else {
					out.UsedBytes = u.Used
					out.FreeBytes = u.Free
				}
			}
		}
		result.Disks = append(result.Disks, out)
	}

	return result, errs
}

// mountPoints maps device names ("vda") to their first mount point.
func (c *StorageCollector) mountPoints(ctx context.Context) map[string]string {
	points := make(map[string]string)
	stats, err := c.mounts(ctx)
	if err != nil {
		c.logger.Debug("Cannot list mount points", zap.Error(err))
		return points
	}
	for _, st := range stats {
		name := filepath.Base(st.Device)
		if _, seen := points[name]; !seen && st.Mountpoint != "" {
			points[name] = st.Mountpoint
		}
	}
	return points
}
