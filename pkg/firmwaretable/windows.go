//go:build windows
// +build windows

package firmwaretable

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/facebookincubator/go-belt/tool/logger"
	"golang.org/x/sys/windows"
)

const firmwareTableProviderRSMB = 'R'<<24 | 'S'<<16 | 'M'<<8 | 'B'

var procGetSystemFirmwareTable = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetSystemFirmwareTable")

// WindowsAPI acquires the table through GetSystemFirmwareTable.
type WindowsAPI struct {
	Config config
}

var _ Provider = (*WindowsAPI)(nil)

// NewWindowsAPI returns a new instance of WindowsAPI.
func NewWindowsAPI(opts ...Option) *WindowsAPI {
	return &WindowsAPI{Config: getConfig(opts...)}
}

func getSystemFirmwareTable(buf []byte) (uint32, error) {
	var ptr uintptr
	if len(buf) > 0 {
		ptr = uintptr(unsafe.Pointer(&buf[0]))
	}
	r, _, err := procGetSystemFirmwareTable.Call(uintptr(firmwareTableProviderRSMB), 0, ptr, uintptr(len(buf)))
	if r == 0 {
		return 0, err
	}
	return uint32(r), nil
}

// AcquireTable implements Provider.
func (p *WindowsAPI) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	if err := procGetSystemFirmwareTable.Find(); err != nil {
		return nil, nil, ErrPlatformUnsupported{Platform: fmt.Sprintf("windows (%v)", err)}
	}
	size, err := getSystemFirmwareTable(nil)
	if err != nil {
		return nil, nil, classifyError("GetSystemFirmwareTable", err)
	}
	buf := make([]byte, size)
	written, err := getSystemFirmwareTable(buf)
	if err != nil {
		return nil, nil, classifyError("GetSystemFirmwareTable", err)
	}
	raw, err := ParseRawSMBIOSData(buf[:written])
	if err != nil {
		return nil, nil, ErrNotFound{Source: "GetSystemFirmwareTable", Err: err}
	}
	logger.FromCtx(ctx).Debugf("got SMBIOS %s table of %d bytes from GetSystemFirmwareTable", raw.Version, len(raw.Table))
	entryPoint, err := raw.EntryPoint()
	if err != nil {
		return nil, nil, err
	}
	return entryPoint, raw.Table, nil
}
