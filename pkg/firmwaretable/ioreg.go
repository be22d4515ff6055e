package firmwaretable

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
)

const (
	ioregPropertyEntryPoint = "SMBIOS-EPS"
	ioregPropertyTable      = "SMBIOS"
)

// IORegistry acquires the table from the "AppleSMBIOS" class of
// the macOS I/O Registry by executing "ioreg".
type IORegistry struct {
	Config config

	overrideExecCommandFunc execCommandFunc
}

var _ Provider = (*IORegistry)(nil)

// NewIORegistry returns a new instance of IORegistry.
func NewIORegistry(opts ...Option) *IORegistry {
	return &IORegistry{Config: getConfig(opts...)}
}

func (p *IORegistry) execCommand(ctx context.Context, cmd string, args ...string) process {
	if p.overrideExecCommandFunc != nil {
		return p.overrideExecCommandFunc(ctx, cmd, args...)
	}
	return execCommand(ctx, cmd, args...)
}

// AcquireTable implements Provider.
func (p *IORegistry) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	output, err := p.execCommand(ctx, p.Config.IORegPath, "-r", "-w0", "-l", "-c", "AppleSMBIOS").Output()
	if err != nil {
		return nil, nil, classifyError(p.Config.IORegPath, err)
	}
	entryPoint, table, err := parseIORegOutput(output)
	if err != nil {
		return nil, nil, ErrNotFound{Source: p.Config.IORegPath, Err: err}
	}
	if entryPoint == nil {
		logger.FromCtx(ctx).Debugf("no '%s' property, synthesizing the entry point", ioregPropertyEntryPoint)
		entryPoint, err = synthesizeEntryPoint(p.Config.Version, table)
		if err != nil {
			return nil, nil, err
		}
	}
	return entryPoint, table, nil
}

// parseIORegOutput extracts the properties looking like:
//
//	"SMBIOS-EPS" = <5f534d5f...>
//	"SMBIOS" = <0018000001...>
func parseIORegOutput(output []byte) ([]byte, []byte, error) {
	properties := map[string][]byte{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(nil, 16<<20)
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " |+-o")
		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			continue
		}
		key = strings.Trim(key, `"`)
		if key != ioregPropertyEntryPoint && key != ioregPropertyTable {
			continue
		}
		if !strings.HasPrefix(value, "<") || !strings.HasSuffix(value, ">") {
			return nil, nil, fmt.Errorf("property '%s' is not data: '%s'", key, value)
		}
		data, err := hex.DecodeString(value[1 : len(value)-1])
		if err != nil {
			return nil, nil, fmt.Errorf("unable to decode property '%s': %w", key, err)
		}
		properties[key] = data
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("unable to read the ioreg output: %w", err)
	}

	table, ok := properties[ioregPropertyTable]
	if !ok {
		return nil, nil, fmt.Errorf("no property '%s'", ioregPropertyTable)
	}
	return properties[ioregPropertyEntryPoint], table, nil
}
