package firmwaretable

import (
	"encoding/binary"
	"fmt"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

const rawSMBIOSDataHeaderSize = 8

// RawSMBIOSData is the layout returned by GetSystemFirmwareTable('RSMB')
// on Windows.
type RawSMBIOSData struct {
	Used20CallingMethod uint8
	Version             smbios.Version
	Table               []byte
}

// ParseRawSMBIOSData parses the header prepended to the table by Windows.
func ParseRawSMBIOSData(b []byte) (*RawSMBIOSData, error) {
	if len(b) < rawSMBIOSDataHeaderSize {
		return nil, fmt.Errorf("raw SMBIOS data is too short: %d < %d", len(b), rawSMBIOSDataHeaderSize)
	}
	length := binary.LittleEndian.Uint32(b[4:])
	if uint64(length) > uint64(len(b)-rawSMBIOSDataHeaderSize) {
		return nil, fmt.Errorf("declared table length 0x%X exceeds the data (0x%X)", length, len(b)-rawSMBIOSDataHeaderSize)
	}
	return &RawSMBIOSData{
		Used20CallingMethod: b[0],
		Version:             smbios.Version{Major: b[1], Minor: b[2], Revision: b[3]},
		Table:               b[rawSMBIOSDataHeaderSize : rawSMBIOSDataHeaderSize+int(length)],
	}, nil
}

// EntryPoint returns a synthesized entry point for the table.
func (d *RawSMBIOSData) EntryPoint() ([]byte, error) {
	return synthesizeEntryPoint(d.Version, d.Table)
}
