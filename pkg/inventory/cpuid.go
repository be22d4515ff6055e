package inventory

import (
	"github.com/klauspost/cpuid/v2"
)

// fillFromCPUID completes the fields the table left empty.
func fillFromCPUID(info *ProcessorInfo, cpu cpuid.CPUInfo) {
	if info.Manufacturer == "" {
		info.Manufacturer = cpu.VendorString
	}
	if info.Version == "" {
		info.Version = cpu.BrandName
	}
	if info.CoreCount == 0 && cpu.PhysicalCores > 0 {
		info.CoreCount = uint16(cpu.PhysicalCores)
	}
	if info.ThreadCount == 0 && cpu.LogicalCores > 0 {
		info.ThreadCount = uint16(cpu.LogicalCores)
	}
	if info.L2CacheSize == 0 && cpu.Cache.L2 > 0 {
		info.L2CacheSize = uint64(cpu.Cache.L2)
	}
	if info.L3CacheSize == 0 && cpu.Cache.L3 > 0 {
		info.L3CacheSize = uint64(cpu.Cache.L3)
	}
	if info.CurrentSpeedMHz == 0 && cpu.Hz > 0 {
		info.CurrentSpeedMHz = uint16(cpu.Hz / 1_000_000)
	}
}
