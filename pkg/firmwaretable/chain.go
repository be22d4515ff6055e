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
	"context"
	"errors"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// Chain tries the providers in order and returns the first table acquired.
//
// If all of them fail, the error is ErrAccessDenied if any provider was
// denied access, ErrPlatformUnsupported if every provider is unsupported,
// and ErrNotFound otherwise. The individual errors are joined into Err.
type Chain []Provider

var _ Provider = Chain(nil)

// AcquireTable implements Provider.
func (c Chain) AcquireTable(ctx context.Context) ([]byte, []byte, error) {
	var (
		mErr          *multierror.Error
		accessDenied  bool
		allRestricted = len(c) > 0
	)
	for _, provider := range c {
		entryPoint, table, err := provider.AcquireTable(ctx)
		if err == nil {
			logger.FromCtx(ctx).Debugf("acquired the SMBIOS table using %T", provider)
			return entryPoint, table, nil
		}
		logger.FromCtx(ctx).Debugf("unable to acquire the SMBIOS table using %T: %v", provider, err)
		mErr = multierror.Append(mErr, fmt.Errorf("%T: %w", provider, err))

		if errors.As(err, &ErrAccessDenied{}) {
			accessDenied = true
		}
		if !errors.As(err, &ErrPlatformUnsupported{}) {
			allRestricted = false
		}
	}

	switch {
	case len(c) == 0:
		return nil, nil, ErrNotFound{Source: "an empty provider chain"}
	case accessDenied:
		return nil, nil, ErrAccessDenied{Source: "the provider chain", Err: mErr.ErrorOrNil()}
	case allRestricted:
		return nil, nil, ErrPlatformUnsupported{Platform: fmt.Sprintf("this platform (%v)", mErr.ErrorOrNil())}
	}
	return nil, nil, ErrNotFound{Source: "the provider chain", Err: mErr.ErrorOrNil()}
}
