package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
	"github.com/immune-gmbh/hwinventory/pkg/smbios/smbiostest"
)

func scanTable(t *testing.T, table []byte) *smbios.RecordStore {
	entryPoint, err := smbios.NewEntryPoint3(smbios.Version{Major: 3, Minor: 2}, uint32(len(table))).MarshalBinary()
	require.NoError(t, err)
	store, err := smbios.Scan(context.Background(), entryPoint, table)
	require.NoError(t, err)
	return store
}

func sampleStore(t *testing.T) *smbios.RecordStore {
	return scanTable(t, smbiostest.SampleTable().Bytes())
}

func TestProjections(t *testing.T) {
	store := sampleStore(t)

	t.Run("bios", func(t *testing.T) {
		info := BIOS(store)
		require.Equal(t, "American Megatrends Inc.", info.Vendor)
		require.Equal(t, "F.42", info.Version)
		require.Equal(t, "03/14/2023", info.ReleaseDate)
		require.Equal(t, uint64(32<<20), info.ROMSize)
		require.Contains(t, info.Characteristics, "PCI is supported")
		require.Contains(t, info.Characteristics, "ACPI is supported")
		require.Contains(t, info.Characteristics, "UEFI is supported")
	})

	t.Run("system", func(t *testing.T) {
		require.Equal(t, SystemInfo{
			Manufacturer: "Acme",
			ProductName:  "X100",
			Version:      "1.0",
			SerialNumber: "SN-123456",
			UUID:         smbiostest.SampleSystemUUID,
			SKUNumber:    "SKU-42",
			Family:       "Servers",
			WakeUpType:   "Power Switch",
		}, System(store))
	})

	t.Run("board", func(t *testing.T) {
		require.Equal(t, BoardInfo{
			Manufacturer:      "Acme",
			Product:           "MB-1",
			Version:           "Rev A",
			SerialNumber:      "BSN-1",
			LocationInChassis: "Slot 0",
		}, Board(store))
	})

	t.Run("processor", func(t *testing.T) {
		require.Equal(t, ProcessorInfo{
			Manufacturer:      "Intel(R) Corporation",
			Version:           "Intel(R) Core(TM) i7-8700 CPU @ 3.20GHz",
			SocketDesignation: "CPU0",
			ProcessorType:     "Central Processor",
			ProcessorFamily:   "Core i7",
			MaxSpeedMHz:       4600,
			CurrentSpeedMHz:   3200,
			CoreCount:         6,
			ThreadCount:       12,
			L2CacheSize:       1536 << 10,
			L3CacheSize:       12288 << 10,
		}, Processor(store))
		require.Len(t, Processors(store), 1)
	})

	t.Run("memory", func(t *testing.T) {
		info := Memory(store)
		require.Equal(t, uint64(16<<30), info.TotalPhysicalMemory)
		require.Equal(t, uint64(64<<30), info.MaxCapacity)
		require.Equal(t, 1, info.MemoryDevices)
		require.Equal(t, []MemoryDeviceInfo{{
			Locator:      "DIMM_A1",
			BankLocator:  "BANK 0",
			Size:         16 << 30,
			Type:         "DDR4",
			SpeedMTs:     2666,
			Manufacturer: "Samsung",
			SerialNumber: "S/N 1",
			PartNumber:   "M378A2K43CB1-CTD",
		}}, info.Devices)
	})

	t.Run("chassis", func(t *testing.T) {
		require.Equal(t, ChassisInfo{
			Manufacturer:     "Acme",
			Type:             "Rack Mount Chassis",
			SerialNumber:     "CSN-1",
			BootUpState:      "Safe",
			PowerSupplyState: "Safe",
			ThermalState:     "Safe",
		}, Chassis(store))
	})

	t.Run("oem_strings", func(t *testing.T) {
		require.Equal(t, []string{"vendor:acme", "tag:42"}, OEMStrings(store))
	})

	t.Run("all", func(t *testing.T) {
		all := All(store)
		require.Equal(t, System(store), all.System)
		require.Equal(t, Memory(store), all.Memory)

		b, err := json.Marshal(all)
		require.NoError(t, err)
		require.Contains(t, string(b), `"serialNumber":"SN-123456"`)
		require.Contains(t, string(b), `"oemStrings":["vendor:acme","tag:42"]`)
	})
}

func TestProjectionsOfMinimalTable(t *testing.T) {
	b := smbiostest.NewTableBuilder()
	b.Structure(1, 0x0001, []byte{1, 0, 0, 0}, "Acme")
	b.EndOfTable(0x0002)
	store := scanTable(t, b.Bytes())

	require.Equal(t, SystemInfo{Manufacturer: "Acme"}, System(store))
	require.Equal(t, BIOSInfo{}, BIOS(store))
	require.Equal(t, BoardInfo{}, Board(store))
	require.Equal(t, ProcessorInfo{}, Processor(store))
	require.Equal(t, MemoryInfo{}, Memory(store))
	require.Equal(t, ChassisInfo{}, Chassis(store))
	require.Nil(t, OEMStrings(store))
}

func TestProcessorCacheHandleToOtherType(t *testing.T) {
	table := smbiostest.SampleTable().Bytes()
	// point the L2 cache handle of the processor to the memory array
	idx := bytes.Index(table, []byte{0x05, 0x00, 0x06, 0x00, 0x07, 0x00})
	require.Greater(t, idx, 0)
	table[idx+2] = smbiostest.SampleHandleArray

	info := Processor(scanTable(t, table))
	require.Zero(t, info.L2CacheSize)
	require.Equal(t, uint64(12288<<10), info.L3CacheSize)
}
