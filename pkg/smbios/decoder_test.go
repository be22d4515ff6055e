package smbios_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func scanSample(t *testing.T) *smbios.RecordStore {
	b := smbiostest.SampleTable()
	store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 2), b.Bytes())
	require.NoError(t, err)
	return store
}

func TestDecodeBIOS(t *testing.T) {
	bios, ok := scanSample(t).BIOS()
	require.True(t, ok)

	require.Equal(t, "American Megatrends Inc.", bios.Vendor)
	require.Equal(t, "F.42", bios.Version)
	require.Equal(t, "03/14/2023", bios.ReleaseDate)
	require.Equal(t, uint16(0xF000), *bios.StartingAddressSegment)
	require.Equal(t, uint64(32<<20), *bios.ROMSize)
	require.Equal(t, []string{"PCI is supported", "BIOS is upgradeable"}, bios.Characteristics.Names())
	require.Zero(t, bios.Characteristics.Unknown())
	require.Equal(t, []string{"ACPI is supported", "USB legacy is supported"}, bios.CharacteristicsExt1.Names())
	require.NotZero(t, *bios.CharacteristicsExt2&smbios.BIOSCharacteristicsExt2UEFI)
	require.Zero(t, *bios.CharacteristicsExt2&smbios.BIOSCharacteristicsExt2VirtualMachine)
	require.Equal(t, uint8(5), *bios.SystemBIOSMajorRelease)
	require.Equal(t, uint8(27), *bios.SystemBIOSMinorRelease)
	require.Equal(t, uint8(0xFF), *bios.ECFirmwareMajorRelease)

	t.Run("legacy_rom_size_and_short_structure", func(t *testing.T) {
		b := smbiostest.NewTableBuilder()
		b.Add(0, 0, smbiostest.NewFormatted(0x12).
			U8(0x04, 1).
			U8(0x09, 0x0F).
			U64(0x0A, 1<<3|1<<40),
			"Vendor")
		b.EndOfTable(1)

		store, err := smbios.Scan(context.Background(), b.EntryPoint2(2, 3), b.Bytes())
		require.NoError(t, err)
		bios, ok := store.BIOS()
		require.True(t, ok)
		require.Equal(t, "Vendor", bios.Vendor)
		require.Equal(t, "", bios.Version)
		require.Equal(t, uint64(1<<20), *bios.ROMSize)
		require.Equal(t, []string{"BIOS characteristics not supported"}, bios.Characteristics.Names())
		require.Equal(t, uint64(1<<40), bios.Characteristics.Unknown())
		require.Nil(t, bios.CharacteristicsExt1)
		require.Nil(t, bios.CharacteristicsExt2)
		require.Nil(t, bios.SystemBIOSMajorRelease)
		require.Nil(t, bios.ECFirmwareMinorRelease)
	})
}

func TestDecodeSystem(t *testing.T) {
	sys, ok := scanSample(t).System()
	require.True(t, ok)

	require.Equal(t, "Acme", sys.Manufacturer)
	require.Equal(t, "X100", sys.ProductName)
	require.Equal(t, "1.0", sys.Version)
	require.Equal(t, "SN-123456", sys.SerialNumber)
	require.Equal(t, smbiostest.SampleSystemUUID, sys.UUID.String())
	require.Equal(t, smbios.WakeUpType(6), *sys.WakeUpType)
	require.Equal(t, "Power Switch", sys.WakeUpType.String())
	require.Equal(t, "SKU-42", sys.SKUNumber)
	require.Equal(t, "Servers", sys.Family)

	uuidBytes := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	for _, tc := range []struct {
		name     string
		major    uint8
		minor    uint8
		rawUUID  []byte
		expected string
	}{
		{"pre_2_6_network_order", 2, 5, uuidBytes, "00112233-4455-6677-8899-aabbccddeeff"},
		{"since_2_6_mixed_endian", 2, 6, uuidBytes, "33221100-5544-7766-8899-aabbccddeeff"},
		{"not_present", 3, 0, make([]byte, 16), ""},
		{"not_settable", 3, 0, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, ""},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := smbiostest.NewTableBuilder()
			b.Add(1, 0, smbiostest.NewFormatted(0x19).Bytes(0x08, tc.rawUUID))
			b.EndOfTable(1)

			store, err := smbios.Scan(context.Background(), b.EntryPoint3(tc.major, tc.minor), b.Bytes())
			require.NoError(t, err)
			sys, ok := store.System()
			require.True(t, ok)
			require.Equal(t, tc.rawUUID, sys.RawUUID)
			if tc.expected == "" {
				require.Nil(t, sys.UUID)
			} else {
				require.Equal(t, tc.expected, sys.UUID.String())
			}
			require.Equal(t, tc.name == "not_settable", sys.UUIDNotSettable())
			require.Equal(t, "", sys.SKUNumber)
		})
	}
}

func TestDecodeBaseBoard(t *testing.T) {
	boards := scanSample(t).BaseBoards()
	require.Len(t, boards, 1)
	board := boards[0]

	require.Equal(t, "Acme", board.Manufacturer)
	require.Equal(t, "MB-1", board.Product)
	require.Equal(t, "Rev A", board.Version)
	require.Equal(t, "BSN-1", board.SerialNumber)
	require.Equal(t, "To Be Filled By O.E.M.", board.AssetTag)
	require.Equal(t, []string{"Board is a hosting board", "Board is replaceable"}, board.FeatureFlags.Names())
	require.Equal(t, "Slot 0", board.LocationInChassis)
	require.Equal(t, uint16(smbiostest.SampleHandleChassis), *board.ChassisHandle)
	require.Equal(t, "Motherboard", board.BoardType.String())
	require.Equal(t, []uint16{smbiostest.SampleHandleProcessor}, board.ContainedObjectHandles)

	t.Run("handles_beyond_length", func(t *testing.T) {
		b := smbiostest.NewTableBuilder()
		b.Add(2, 0, smbiostest.NewFormatted(0x11).
			U8(0x0E, 3).
			U16(0x0F, 0x1234))
		b.EndOfTable(1)

		store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
		require.NoError(t, err)
		require.Equal(t, []uint16{0x1234}, store.BaseBoards()[0].ContainedObjectHandles)
	})
}

func TestDecodeChassis(t *testing.T) {
	chassis := scanSample(t).Chassis()
	require.Len(t, chassis, 1)
	c := chassis[0]

	require.Equal(t, "Acme", c.Manufacturer)
	require.Equal(t, "Rack Mount Chassis", c.Type.String())
	require.True(t, *c.Lock)
	require.Equal(t, "", c.Version)
	require.Equal(t, "CSN-1", c.SerialNumber)
	require.Equal(t, "Default string", c.AssetTag)
	require.Equal(t, "Safe", c.BootUpState.String())
	require.Equal(t, "Safe", c.PowerSupplyState.String())
	require.Equal(t, "Safe", c.ThermalState.String())
	require.Equal(t, "None", c.SecurityStatus.String())
	require.Equal(t, uint32(0), *c.OEMDefined)
	require.Equal(t, uint8(2), *c.Height)
	require.Equal(t, uint8(2), *c.NumberOfPowerCords)
	require.Empty(t, c.ContainedElements)
	require.Equal(t, "Chassis SKU", c.SKUNumber)

	t.Run("contained_elements", func(t *testing.T) {
		b := smbiostest.NewTableBuilder()
		b.Add(3, 0, smbiostest.NewFormatted(0x15+2*3+1).
			U8(0x05, 0x03).
			U8(0x13, 2).
			U8(0x14, 3).
			Bytes(0x15, []byte{0x0A, 1, 1, 0x84, 1, 2}).
			U8(0x1B, 1),
			"SKU")
		b.EndOfTable(1)

		store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
		require.NoError(t, err)
		c := store.Chassis()[0]
		require.Equal(t, "Desktop", c.Type.String())
		require.False(t, *c.Lock)
		require.Equal(t, []smbios.ChassisElement{
			{Type: 0x0A, Minimum: 1, Maximum: 1},
			{Type: 0x84, Minimum: 1, Maximum: 2},
		}, c.ContainedElements)
		require.Equal(t, "SKU", c.SKUNumber)
	})
}

func TestDecodeProcessor(t *testing.T) {
	processors := scanSample(t).Processors()
	require.Len(t, processors, 1)
	p := processors[0]

	require.Equal(t, "CPU0", p.SocketDesignation)
	require.Equal(t, "Central Processor", p.ProcessorType.String())
	require.Equal(t, "Core i7", p.Family.String())
	require.Equal(t, "Intel(R) Corporation", p.Manufacturer)
	require.Equal(t, uint64(0xBFEBFBFF000906EA), *p.ID)
	require.Equal(t, "Intel(R) Core(TM) i7-8700 CPU @ 3.20GHz", p.Version)
	require.False(t, p.Voltage.IsLegacy())
	require.Equal(t, []string{"1.0 V"}, p.Voltage.Names())
	require.Equal(t, uint16(100), *p.ExternalClockMHz)
	require.Equal(t, uint16(4600), *p.MaxSpeedMHz)
	require.Equal(t, uint16(3200), *p.CurrentSpeedMHz)
	require.True(t, p.Status.Populated())
	require.Equal(t, smbios.CPUStatus(1), p.Status.CPUStatus())
	require.Equal(t, "Enabled", p.Status.CPUStatus().String())
	require.Zero(t, p.Status.Unknown())
	require.Equal(t, uint16(smbiostest.SampleHandleL2Cache), *p.L2CacheHandle)
	require.Equal(t, uint16(6), *p.CoreCount)
	require.Equal(t, uint16(6), *p.CoreEnabled)
	require.Equal(t, uint16(12), *p.ThreadCount)
	require.Nil(t, p.ThreadEnabled)
	require.Contains(t, p.Characteristics.Names(), "64-bit capable")
	require.Equal(t, "", p.SocketType)

	t.Run("truncated_before_core_count", func(t *testing.T) {
		b := smbiostest.NewTableBuilder()
		b.Add(4, 0, smbiostest.NewFormatted(0x23).
			U8(0x07, 1).
			U8(0x10, 2).
			U16(0x14, 3000).
			U16(0x16, 2000).
			U8(0x11, 0x03),
			"AMD", "EPYC")
		b.EndOfTable(1)

		store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
		require.NoError(t, err)
		p := store.Processors()[0]
		require.Equal(t, "AMD", p.Manufacturer)
		require.Equal(t, "EPYC", p.Version)
		require.Equal(t, uint16(3000), *p.MaxSpeedMHz)
		require.Equal(t, uint16(2000), *p.CurrentSpeedMHz)
		require.True(t, p.Voltage.IsLegacy())
		require.Equal(t, []string{"5.0 V", "3.3 V"}, p.Voltage.Names())
		require.Nil(t, p.CoreCount)
		require.Nil(t, p.CoreEnabled)
		require.Nil(t, p.ThreadCount)
		require.Nil(t, p.Characteristics)
	})

	t.Run("core_count_escape", func(t *testing.T) {
		for _, tc := range []struct {
			name     string
			length   int
			expected uint16
		}{
			{"extended_present", 0x30, 512},
			{"extended_absent", 0x28, 0xFF},
		} {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				f := smbiostest.NewFormatted(tc.length).
					U8(0x06, 0xFE).
					U8(0x23, 0xFF).
					U8(0x24, 0xFF).
					U8(0x25, 0xFF)
				if tc.length >= 0x30 {
					f.U16(0x28, 0x101).U16(0x2A, 512).U16(0x2C, 512).U16(0x2E, 512)
				}
				b := smbiostest.NewTableBuilder()
				b.Add(4, 0, f)
				b.EndOfTable(1)

				store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
				require.NoError(t, err)
				p := store.Processors()[0]
				require.Equal(t, tc.expected, *p.CoreCount)
				require.Equal(t, tc.expected, *p.CoreEnabled)
				require.Equal(t, tc.expected, *p.ThreadCount)
				if tc.length >= 0x30 {
					require.Equal(t, "ARMv8", p.Family.String())
				} else {
					require.Equal(t, smbios.ProcessorFamily(0xFE), *p.Family)
				}
			})
		}
	})
}

func TestDecodeCache(t *testing.T) {
	store := scanSample(t)
	caches := store.Caches()
	require.Len(t, caches, 3)

	for idx, expectedKiB := range []uint64{384, 1536, 12288} {
		c := caches[idx]
		require.Equal(t, uint8(idx+1), c.Configuration.Level())
		require.True(t, c.Configuration.Enabled())
		require.False(t, c.Configuration.Socketed())
		require.Equal(t, uint8(1), c.Configuration.OperationalMode())
		require.Equal(t, expectedKiB<<10, *c.MaximumSize)
		require.Equal(t, expectedKiB<<10, *c.InstalledSize)
	}

	t.Run("64k_granularity_without_size2", func(t *testing.T) {
		b := smbiostest.NewTableBuilder()
		b.Add(7, 0, smbiostest.NewFormatted(0x12).
			U16(0x07, 0x8000|2).
			U16(0x09, 0))
		b.EndOfTable(1)

		store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
		require.NoError(t, err)
		c := store.Caches()[0]
		require.Equal(t, uint64(128<<10), *c.MaximumSize)
		require.Equal(t, uint64(0), *c.InstalledSize)
		require.Nil(t, c.Associativity)
	})
}

func TestDecodePhysicalMemoryArray(t *testing.T) {
	arrays := scanSample(t).PhysicalMemoryArrays()
	require.Len(t, arrays, 1)
	a := arrays[0]
	require.Equal(t, "System Memory", a.Use.String())
	require.Equal(t, uint64(64<<30), *a.MaximumCapacity)
	require.Equal(t, uint16(2), *a.NumberOfMemoryDevices)

	t.Run("extended_capacity", func(t *testing.T) {
		b := smbiostest.NewTableBuilder()
		b.Add(16, 0, smbiostest.NewFormatted(0x17).
			U32(0x07, 0x80000000).
			U64(0x0F, 8<<40))
		b.EndOfTable(1)

		store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
		require.NoError(t, err)
		require.Equal(t, uint64(8<<40), *store.PhysicalMemoryArrays()[0].MaximumCapacity)
	})
}

func TestDecodeMemoryDevice(t *testing.T) {
	devices := scanSample(t).MemoryDevices()
	require.Len(t, devices, 2)

	d := devices[0]
	require.True(t, d.IsInstalled())
	require.Equal(t, uint64(16<<30), *d.Size)
	require.Equal(t, "DIMM", d.FormFactor.String())
	require.Equal(t, "DIMM_A1", d.DeviceLocator)
	require.Equal(t, "BANK 0", d.BankLocator)
	require.Equal(t, "DDR4", d.MemoryType.String())
	require.Equal(t, uint32(2666), *d.SpeedMTs)
	require.Equal(t, uint32(2666), *d.ConfiguredSpeedMTs)
	require.Equal(t, "Samsung", d.Manufacturer)
	require.Equal(t, "S/N 1", d.SerialNumber)
	require.Equal(t, "", d.AssetTag)
	require.Equal(t, "M378A2K43CB1-CTD", d.PartNumber)
	require.Equal(t, uint8(2), *d.Rank)
	require.Equal(t, uint16(1200), *d.ConfiguredVoltageMV)
	require.Nil(t, d.MemoryTechnology)
	require.Nil(t, d.VolatileSize)

	empty := devices[1]
	require.False(t, empty.IsInstalled())
	require.Equal(t, uint64(0), *empty.Size)
	require.Equal(t, "Unknown", empty.MemoryType.String())
	require.Nil(t, empty.Rank)

	for _, tc := range []struct {
		name     string
		size     uint16
		extended uint32
		expected *uint64
	}{
		{"unknown", 0xFFFF, 0, nil},
		{"kilobytes", 0x8000 | 512, 0, ptr(uint64(512 << 10))},
		{"extended", 0x7FFF, 64 << 10, ptr(uint64(64 << 30))},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := smbiostest.NewTableBuilder()
			b.Add(17, 0, smbiostest.NewFormatted(0x20).
				U16(0x0C, tc.size).
				U16(0x15, 0xFFFF).
				U32(0x1C, tc.extended))
			b.EndOfTable(1)

			store, err := smbios.Scan(context.Background(), b.EntryPoint3(3, 0), b.Bytes())
			require.NoError(t, err)
			d := store.MemoryDevices()[0]
			require.Equal(t, tc.expected, d.Size)
			require.Equal(t, uint32(0xFFFF), *d.SpeedMTs)
			require.Nil(t, d.ConfiguredSpeedMTs)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
