package commands

import (
	"errors"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// Exit codes of the failures to get a table.
const (
	ExitCodeGeneric             = 3
	ExitCodeAccessDenied        = 4
	ExitCodeNotFound            = 5
	ExitCodePlatformUnsupported = 6
	ExitCodeInvalidTable        = 7
)

// WithExitCode wraps the error into ErrExitCode with the exit code
// corresponding to the failure.
func WithExitCode(err error) error {
	if err == nil {
		return nil
	}
	code := ExitCodeGeneric
	switch {
	case errors.As(err, &firmwaretable.ErrAccessDenied{}):
		code = ExitCodeAccessDenied
	case errors.As(err, &firmwaretable.ErrPlatformUnsupported{}):
		code = ExitCodePlatformUnsupported
	case errors.As(err, &firmwaretable.ErrNotFound{}):
		code = ExitCodeNotFound
	case errors.As(err, &smbios.ErrInvalidEntryPoint{}),
		errors.As(err, &smbios.ErrMalformedStructure{}):
		code = ExitCodeInvalidTable
	}
	return ErrExitCode{Code: code, Err: err}
}
