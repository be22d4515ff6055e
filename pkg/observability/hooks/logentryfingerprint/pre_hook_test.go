package logentryfingerprint

import (
	"testing"

	"github.com/facebookincubator/go-belt/pkg/field"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/stretchr/testify/require"
)

func TestPreHook(t *testing.T) {
	value := func(level logger.Level, format string, args ...any) FieldValue {
		result := PreHook{}.ProcessInputf(nil, level, format, args...)
		f, ok := result.ExtraFields.(*field.Field)
		require.True(t, ok)
		require.Equal(t, FieldKey, f.Key)
		return f.Value.(FieldValue)
	}

	t.Run("arguments_are_ignored", func(t *testing.T) {
		require.Equal(t,
			value(logger.LevelWarning, "structure 0x%04X is truncated", 1),
			value(logger.LevelWarning, "structure 0x%04X is truncated", 2),
		)
		require.Len(t, value(logger.LevelWarning, "msg"), fingerprintSize*2)
	})

	t.Run("level_and_format_matter", func(t *testing.T) {
		require.NotEqual(t,
			value(logger.LevelWarning, "msg"),
			value(logger.LevelDebug, "msg"),
		)
		require.NotEqual(t,
			value(logger.LevelWarning, "msg"),
			value(logger.LevelWarning, "another msg"),
		)
	})

	t.Run("argument_types", func(t *testing.T) {
		a := PreHook{}.ProcessInput(nil, logger.LevelInfo, "a", 1)
		b := PreHook{}.ProcessInput(nil, logger.LevelInfo, "b", 2)
		c := PreHook{}.ProcessInput(nil, logger.LevelInfo, "c", "d")
		require.Equal(t, a.ExtraFields, b.ExtraFields)
		require.NotEqual(t, a.ExtraFields, c.ExtraFields)
		require.NotPanics(t, func() {
			PreHook{}.ProcessInput(nil, logger.LevelInfo, nil)
		})
	})
}
