package formatter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	logLevelSymbol []byte
	logLevelColor  = map[logrus.Level]*color.Color{
		logrus.PanicLevel: color.New(color.FgHiRed, color.Bold),
		logrus.FatalLevel: color.New(color.FgHiRed, color.Bold),
		logrus.ErrorLevel: color.New(color.FgRed),
		logrus.WarnLevel:  color.New(color.FgYellow),
		logrus.InfoLevel:  color.New(color.FgGreen),
		logrus.DebugLevel: color.New(color.FgCyan),
		logrus.TraceLevel: color.New(color.FgHiBlack),
	}
)

func init() {
	logLevelSymbol = make([]byte, len(logrus.AllLevels)+1)
	for _, level := range logrus.AllLevels {
		logLevelSymbol[level] = strings.ToUpper(level.String()[:1])[0]
	}
}

// CompactText is a logrus formatter which prints laconic lines, like
// [12:34 W walker.go:56] my message	key=value
type CompactText struct {
	TimestampFormat string

	// FieldAllowList limits the printed fields. All fields are printed if nil.
	FieldAllowList []string

	// Colors enables coloring of the level symbol.
	Colors bool
}

func (f *CompactText) isAllowed(key string) bool {
	if f.FieldAllowList == nil {
		return true
	}
	for _, allowed := range f.FieldAllowList {
		if key == allowed {
			return true
		}
	}
	return false
}

func (f *CompactText) levelSymbol(level logrus.Level) string {
	symbol := string(logLevelSymbol[level])
	if !f.Colors {
		return symbol
	}
	if c := logLevelColor[level]; c != nil {
		return c.Sprint(symbol)
	}
	return symbol
}

// Format implements logrus.Formatter.
func (f *CompactText) Format(entry *logrus.Entry) ([]byte, error) {
	var str, header strings.Builder
	timestamp := time.RFC3339
	if f.TimestampFormat != "" {
		timestamp = f.TimestampFormat
	}
	header.WriteString(entry.Time.Format(timestamp))
	header.WriteByte(' ')
	header.WriteString(f.levelSymbol(entry.Level))
	if entry.Caller != nil {
		header.WriteString(fmt.Sprintf(" %s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line))
	}
	str.WriteString(fmt.Sprintf("[%s] %s",
		header.String(),
		entry.Message,
	))

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if f.isAllowed(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		str.WriteString(fmt.Sprintf("\t%s=%v", key, entry.Data[key]))
	}

	str.WriteByte('\n')
	return []byte(str.String()), nil
}
