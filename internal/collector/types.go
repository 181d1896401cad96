package collector

// Component records. The hw tag declares the record field name, whether the
// field belongs to the minimal subset and whether it carries a serial number.
// See models.TagName.

// SystemInfo identifies the host and its operating system.
type SystemInfo struct {
	Hostname       string         `hw:"hostname,minimal"`
	OSName         string         `hw:"os_name,minimal"`
	OSVersion      string         `hw:"os_version,minimal"`
	Architecture   string         `hw:"architecture,minimal"`
	PlatformFamily string         `hw:"platform_family"`
	KernelVersion  string         `hw:"kernel_version"`
	BootTime       string         `hw:"boot_time"`
	UptimeSeconds  uint64         `hw:"uptime_seconds"`
	Virtualization string         `hw:"virtualization"`
	Manufacturer   string         `hw:"manufacturer"`
	ProductName    string         `hw:"product_name"`
	ProductFamily  string         `hw:"product_family"`
	SerialNumber   string         `hw:"serial_number,serial"`
	UUID           string         `hw:"uuid,serial"`
	Extra          map[string]any `hw:",extra"`
}

// CPUInfo describes the installed processors.
type CPUInfo struct {
	Name           string  `hw:"name,minimal"`
	Cores          int     `hw:"cores,minimal"`
	Threads        int     `hw:"threads,minimal"`
	Architecture   string  `hw:"architecture,minimal"`
	Vendor         string  `hw:"vendor"`
	Family         string  `hw:"family"`
	Model          string  `hw:"model"`
	Stepping       int     `hw:"stepping"`
	Packages       int     `hw:"packages"`
	MaxClockMHz    float64 `hw:"max_clock_mhz"`
	CacheSizeKB    int     `hw:"cache_size_kb"`
	Microcode      string  `hw:"microcode"`
	Virtualization string  `hw:"virtualization"`
}

// MemoryInfo describes physical memory and the installed modules.
type MemoryInfo struct {
	TotalBytes     uint64         `hw:"total_bytes,minimal"`
	Total          string         `hw:"total"`
	AvailableBytes uint64         `hw:"available_bytes"`
	UsedBytes      uint64         `hw:"used_bytes"`
	UsedPercent    float64        `hw:"used_percent"`
	SwapTotalBytes uint64         `hw:"swap_total_bytes"`
	ModuleCount    int            `hw:"module_count"`
	Modules        []MemoryModule `hw:"modules"`
}

// MemoryModule is one populated memory slot as reported by SMBIOS.
type MemoryModule struct {
	Locator      string `hw:"locator"`
	BankLocator  string `hw:"bank_locator"`
	Size         string `hw:"size"`
	Speed        string `hw:"speed"`
	Manufacturer string `hw:"manufacturer"`
	PartNumber   string `hw:"part_number"`
	SerialNumber string `hw:"serial_number,serial"`
	AssetTag     string `hw:"asset_tag,serial"`
}

// StorageInfo describes the physical disks.
type StorageInfo struct {
	DiskCount  int    `hw:"disk_count,minimal"`
	TotalBytes uint64 `hw:"total_bytes,minimal"`
	Total      string `hw:"total"`
	Disks      []Disk `hw:"disks"`
}

// Disk is one physical block device.
type Disk struct {
	Name         string      `hw:"name"`
	SizeBytes    uint64      `hw:"size_bytes"`
	Model        string      `hw:"model"`
	Vendor       string      `hw:"vendor"`
	DriveType    string      `hw:"drive_type"`
	Controller   string      `hw:"controller"`
	Removable    bool        `hw:"removable"`
	UsedBytes    uint64      `hw:"used_bytes"`
	FreeBytes    uint64      `hw:"free_bytes"`
	SerialNumber string      `hw:"serial_number,serial"`
	WWN          string      `hw:"wwn,serial"`
	Partitions   []Partition `hw:"partitions"`
}

// Partition is one partition of a disk. Usage is zero for unmounted partitions.
type Partition struct {
	Name       string `hw:"name"`
	MountPoint string `hw:"mount_point"`
	Filesystem string `hw:"filesystem"`
	SizeBytes  uint64 `hw:"size_bytes"`
	UsedBytes  uint64 `hw:"used_bytes"`
	FreeBytes  uint64 `hw:"free_bytes"`
	ReadOnly   bool   `hw:"read_only"`
}

// GPUInfo lists the display adapters.
type GPUInfo struct {
	Count    int          `hw:"count,minimal"`
	Adapters []GPUAdapter `hw:"adapters,minimal"`
}

// GPUAdapter is one display adapter.
type GPUAdapter struct {
	Name          string `hw:"name,minimal"`
	Vendor        string `hw:"vendor"`
	Address       string `hw:"address"`
	Driver        string `hw:"driver"`
	VendorID      string `hw:"vendor_id"`
	ProductID     string `hw:"product_id"`
	MemoryMiB     uint64 `hw:"memory_mib"`
	DriverVersion string `hw:"driver_version"`
	SerialNumber  string `hw:"serial_number,serial"`
}

// MotherboardInfo describes the baseboard, firmware and chassis.
type MotherboardInfo struct {
	Manufacturer        string `hw:"manufacturer,minimal"`
	Product             string `hw:"product,minimal"`
	Version             string `hw:"version"`
	SerialNumber        string `hw:"serial_number,serial"`
	AssetTag            string `hw:"asset_tag,serial"`
	BIOSVendor          string `hw:"bios_vendor"`
	BIOSVersion         string `hw:"bios_version"`
	BIOSDate            string `hw:"bios_date"`
	ChassisType         string `hw:"chassis_type"`
	ChassisVendor       string `hw:"chassis_vendor"`
	ChassisSerialNumber string `hw:"chassis_serial_number,serial"`
}
