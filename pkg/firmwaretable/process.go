// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package firmwaretable

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// process is a started external command.
type process interface {
	Output() ([]byte, error)
}

type execCommandFunc func(ctx context.Context, cmd string, args ...string) process

// commandProcess is an external command running until it exits or
// the context is done.
type commandProcess struct {
	cmd    *exec.Cmd
	stdout bytes.Buffer
	stderr bytes.Buffer
	done   chan struct{}
	err    error
}

func execCommand(ctx context.Context, cmd string, args ...string) process {
	p := &commandProcess{
		cmd:  exec.CommandContext(ctx, cmd, args...),
		done: make(chan struct{}),
	}
	p.cmd.Stdout = &p.stdout
	p.cmd.Stderr = &p.stderr

	if err := p.cmd.Start(); err != nil {
		p.err = err
		close(p.done)
		return p
	}

	go func() {
		defer close(p.done)
		p.err = p.cmd.Wait()
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.err = fmt.Errorf("'%s' was interrupted: %w", cmd, ctxErr)
		}
		logger.FromCtx(ctx).Debugf("'%s' finished, error == %v", p.cmd.Path, p.err)
	}()
	return p
}

// Output waits for the command to exit and returns its stdout. On
// failure the error contains the stderr output.
func (p *commandProcess) Output() ([]byte, error) {
	<-p.done
	if p.err == nil {
		return p.stdout.Bytes(), nil
	}
	if stderr := bytes.TrimSpace(p.stderr.Bytes()); len(stderr) > 0 {
		return nil, fmt.Errorf("%w (stderr: %s)", p.err, stderr)
	}
	return nil, p.err
}
