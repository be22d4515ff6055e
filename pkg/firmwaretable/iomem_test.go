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
	"testing"

	"github.com/stretchr/testify/require"
)

const iomemInputRealCaseSample = `` +
	`00000000-00000fff : Reserved
00001000-0009f7ff : System RAM
0009f800-0009ffff : Reserved
000a0000-000bffff : PCI Bus 0000:00
000c0000-000c7fff : Video ROM
000f0000-000fffff : Reserved
  000f0000-000fffff : System ROM
00100000-7ae0bfff : System RAM
  01000000-01e01090 : Kernel code
  01e01091-025667bf : Kernel data
  02e16000-031fffff : Kernel bss
7ae0c000-7aeb5fff : Reserved
7aeb6000-7aeb6fff : ACPI Tables
7aeb7000-bfffffff : System RAM
c0000000-febfffff : PCI Bus 0000:00
  feb80000-febbffff : 0000:00:02.0
  febec000-febeffff : 0000:00:02.0
    febec000-febeffff : virtio-pci-modern
fec00000-fec003ff : IOAPIC 0
fee00000-fee00fff : Local APIC
fffc0000-ffffffff : Reserved
100000000-e7fffffff : System RAM
`

func TestParseIOMem(t *testing.T) {
	t.Run("RealCaseSample_noerror", func(t *testing.T) {
		parsed, err := ParseIOMem([]byte(iomemInputRealCaseSample))
		require.NoError(t, err)
		require.Len(t, parsed, 15)
	})
	t.Run("parsed", func(t *testing.T) {
		parsed, err := ParseIOMem([]byte(`
c0000000-febfffff : PCI Bus 0000:00
  febec000-febeffff : 0000:00:02.0
000f0000-000fffff : Reserved
  000f0000-000fffff : System ROM
`))
		require.NoError(t, err)
		require.Equal(t, IOMemEntries{
			{
				Start:       0xc0000000,
				End:         0xfebfffff,
				Description: "PCI Bus 0000:00",
				Children: IOMemEntries{
					{
						Start:       0xfebec000,
						End:         0xfebeffff,
						Description: "0000:00:02.0",
					},
				},
			},
			{
				Start:       0x000f0000,
				End:         0x000fffff,
				Description: "Reserved",
				Children: IOMemEntries{
					{
						Start:       0x000f0000,
						End:         0x000fffff,
						Description: "System ROM",
					},
				},
			},
		}, parsed)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := ParseIOMem([]byte("  00000000-00000fff : Reserved\n"))
		require.Error(t, err)
		_, err = ParseIOMem([]byte("00000000 : Reserved\n"))
		require.Error(t, err)
		_, err = ParseIOMem([]byte("0000000z-00000fff : Reserved\n"))
		require.Error(t, err)
	})
}

func TestIOMemFind(t *testing.T) {
	parsed, err := ParseIOMem([]byte(iomemInputRealCaseSample))
	require.NoError(t, err)

	entry := parsed.Find(0x7AEB6000, 0x18)
	require.NotNil(t, entry)
	require.Equal(t, "ACPI Tables", entry.Description)

	entry = parsed.Find(0xF0000, 0x1F)
	require.NotNil(t, entry)
	require.Equal(t, "System ROM", entry.Description)

	entry = parsed.Find(0x01000010, 0x10)
	require.NotNil(t, entry)
	require.Equal(t, "Kernel code", entry.Description)

	require.Nil(t, parsed.Find(0x7AEB6FF0, 0x20))
	require.Nil(t, parsed.Find(0xF00000000, 1))
}
