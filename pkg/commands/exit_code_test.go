package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/hwinventory/pkg/firmwaretable"
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

func TestWithExitCode(t *testing.T) {
	require.NoError(t, WithExitCode(nil))

	for name, tc := range map[string]struct {
		err  error
		code int
	}{
		"access_denied": {
			err:  firmwaretable.ErrAccessDenied{Source: "/dev/mem", Err: errors.New("EPERM")},
			code: ExitCodeAccessDenied,
		},
		"not_found": {
			err:  fmt.Errorf("unable to acquire: %w", firmwaretable.ErrNotFound{Source: "sysfs"}),
			code: ExitCodeNotFound,
		},
		"unsupported": {
			err:  firmwaretable.ErrPlatformUnsupported{Platform: "plan9"},
			code: ExitCodePlatformUnsupported,
		},
		"invalid_entry_point": {
			err:  smbios.ErrInvalidEntryPoint{Reason: "unit-test"},
			code: ExitCodeInvalidTable,
		},
		"malformed": {
			err:  smbios.ErrMalformedStructure{Err: smbios.ErrOutOfBounds{}},
			code: ExitCodeInvalidTable,
		},
		"other": {
			err:  errors.New("unit-test"),
			code: ExitCodeGeneric,
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := WithExitCode(tc.err)
			var exitCoder ExitCoder
			require.True(t, errors.As(err, &exitCoder))
			require.Equal(t, tc.code, exitCoder.ExitCode())
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.err.Error(), err.Error())
		})
	}
}
