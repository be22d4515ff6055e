package inventory

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"

	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Fingerprint identifies a machine by the stable identifiers in its
// SMBIOS table.
type Fingerprint [32]byte

// String implements fmt.Stringer.
func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// MarshalText implements encoding.TextMarshaler.
func (fp Fingerprint) MarshalText() ([]byte, error) {
	return []byte(fp.String()), nil
}

// FingerprintOf returns the BLAKE3-256 digest of the system UUID and
// the serial numbers of the system, board, enclosures, processors and
// memory devices. Placeholders are ignored, so a table which differs
// only in firmware version, dates or sensor states has the same
// fingerprint.
func FingerprintOf(store *smbios.RecordStore) Fingerprint {
	h := blake3.New(32, nil)

	writeField := func(key string, value string) {
		value = Clean(value)
		if value == "" {
			return
		}
		fmt.Fprintf(h, "%s=%q\n", key, value)
	}

	if system, ok := store.System(); ok {
		if system.UUID != nil {
			writeField("system.uuid", system.UUID.String())
		}
		writeField("system.manufacturer", system.Manufacturer)
		writeField("system.product", system.ProductName)
		writeField("system.serial", system.SerialNumber)
	}
	for idx, board := range store.BaseBoards() {
		writeField(fmt.Sprintf("board[%d].serial", idx), board.SerialNumber)
	}
	for idx, chassis := range store.Chassis() {
		writeField(fmt.Sprintf("chassis[%d].serial", idx), chassis.SerialNumber)
	}
	for idx, processor := range store.Processors() {
		if processor.ID != nil {
			writeField(fmt.Sprintf("processor[%d].id", idx), fmt.Sprintf("%016X", *processor.ID))
		}
		writeField(fmt.Sprintf("processor[%d].serial", idx), processor.SerialNumber)
	}
	for _, device := range store.MemoryDevices() {
		if !device.IsInstalled() {
			continue
		}
		writeField(fmt.Sprintf("memory[%s].serial", device.DeviceLocator), device.SerialNumber)
	}

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

// tableDigest identifies the raw bytes of a table together with
// its entry point.
func tableDigest(entryPoint, table []byte) [32]byte {
	h := blake3.New(32, nil)
	fmt.Fprintf(h, "%d:", len(entryPoint))
	_, _ = h.Write(entryPoint)
	_, _ = h.Write(table)
	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}
