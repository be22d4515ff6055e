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

// Package inventory projects a decoded SMBIOS table into flat,
// per-category hardware information.
package inventory

import (
	"github.com/immune-gmbh/hwinventory/pkg/smbios"
)

// BIOSInfo is the summary of the BIOS Information structure.
type BIOSInfo struct {
	Vendor          string   `json:"vendor"`
	Version         string   `json:"version"`
	ReleaseDate     string   `json:"releaseDate"`
	ROMSize         uint64   `json:"romSize,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// SystemInfo is the summary of the System Information structure.
type SystemInfo struct {
	Manufacturer string `json:"manufacturer"`
	ProductName  string `json:"productName"`
	Version      string `json:"version"`
	SerialNumber string `json:"serialNumber"`
	UUID         string `json:"uuid"`
	SKUNumber    string `json:"skuNumber"`
	Family       string `json:"family"`
	WakeUpType   string `json:"wakeUpType"`
}

// BoardInfo is the summary of the first Baseboard Information structure.
type BoardInfo struct {
	Manufacturer      string `json:"manufacturer"`
	Product           string `json:"product"`
	Version           string `json:"version"`
	SerialNumber      string `json:"serialNumber"`
	AssetTag          string `json:"assetTag"`
	LocationInChassis string `json:"locationInChassis"`
}

// ProcessorInfo is the summary of a Processor Information structure.
// Cache sizes are in bytes.
type ProcessorInfo struct {
	Manufacturer      string `json:"manufacturer"`
	Version           string `json:"version"`
	SocketDesignation string `json:"socketDesignation"`
	ProcessorType     string `json:"processorType"`
	ProcessorFamily   string `json:"processorFamily"`
	MaxSpeedMHz       uint16 `json:"maxSpeed"`
	CurrentSpeedMHz   uint16 `json:"currentSpeed"`
	CoreCount         uint16 `json:"coreCount"`
	ThreadCount       uint16 `json:"threadCount"`
	L2CacheSize       uint64 `json:"l2CacheSize"`
	L3CacheSize       uint64 `json:"l3CacheSize"`
}

// MemoryDeviceInfo is the summary of a Memory Device structure.
type MemoryDeviceInfo struct {
	Locator      string `json:"locator"`
	BankLocator  string `json:"bankLocator"`
	Size         uint64 `json:"size"`
	Type         string `json:"type,omitempty"`
	SpeedMTs     uint32 `json:"speed,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	PartNumber   string `json:"partNumber,omitempty"`
}

// MemoryInfo summarizes physical memory. Sizes are in bytes.
type MemoryInfo struct {
	TotalPhysicalMemory uint64             `json:"totalPhysicalMemory"`
	MemoryDevices       int                `json:"memoryDevices"`
	MaxCapacity         uint64             `json:"maxCapacity"`
	Devices             []MemoryDeviceInfo `json:"devices,omitempty"`
}

// ChassisInfo is the summary of the first System Enclosure structure.
type ChassisInfo struct {
	Manufacturer     string `json:"manufacturer"`
	Type             string `json:"type"`
	Version          string `json:"version"`
	SerialNumber     string `json:"serialNumber"`
	AssetTag         string `json:"assetTag"`
	BootUpState      string `json:"bootUpState"`
	PowerSupplyState string `json:"powerSupplyState"`
	ThermalState     string `json:"thermalState"`
}

// AllInfo combines all the categories.
type AllInfo struct {
	BIOS       BIOSInfo      `json:"bios"`
	System     SystemInfo    `json:"system"`
	Board      BoardInfo     `json:"board"`
	Processor  ProcessorInfo `json:"processor"`
	Memory     MemoryInfo    `json:"memory"`
	Chassis    ChassisInfo   `json:"chassis"`
	OEMStrings []string      `json:"oemStrings,omitempty"`
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

func stringOf[T interface{ String() string }](v *T) string {
	if v == nil {
		return ""
	}
	return (*v).String()
}

// BIOS returns the BIOS information. The zero value is returned if
// the table has no BIOS Information structure.
func BIOS(store *smbios.RecordStore) BIOSInfo {
	bios, ok := store.BIOS()
	if !ok {
		return BIOSInfo{}
	}
	info := BIOSInfo{
		Vendor:      bios.Vendor,
		Version:     bios.Version,
		ReleaseDate: bios.ReleaseDate,
		ROMSize:     deref(bios.ROMSize),
	}
	if bios.Characteristics != nil {
		info.Characteristics = append(info.Characteristics, bios.Characteristics.Names()...)
	}
	if bios.CharacteristicsExt1 != nil {
		info.Characteristics = append(info.Characteristics, bios.CharacteristicsExt1.Names()...)
	}
	if bios.CharacteristicsExt2 != nil {
		info.Characteristics = append(info.Characteristics, bios.CharacteristicsExt2.Names()...)
	}
	return info
}

// System returns the system information.
func System(store *smbios.RecordStore) SystemInfo {
	system, ok := store.System()
	if !ok {
		return SystemInfo{}
	}
	info := SystemInfo{
		Manufacturer: system.Manufacturer,
		ProductName:  system.ProductName,
		Version:      system.Version,
		SerialNumber: Clean(system.SerialNumber),
		SKUNumber:    Clean(system.SKUNumber),
		Family:       system.Family,
		WakeUpType:   stringOf(system.WakeUpType),
	}
	if system.UUID != nil {
		info.UUID = system.UUID.String()
	}
	return info
}

// Board returns the information of the first base board.
func Board(store *smbios.RecordStore) BoardInfo {
	boards := store.BaseBoards()
	if len(boards) == 0 {
		return BoardInfo{}
	}
	board := boards[0]
	return BoardInfo{
		Manufacturer:      board.Manufacturer,
		Product:           board.Product,
		Version:           board.Version,
		SerialNumber:      Clean(board.SerialNumber),
		AssetTag:          Clean(board.AssetTag),
		LocationInChassis: board.LocationInChassis,
	}
}

// Processors returns the information of every processor socket.
func Processors(store *smbios.RecordStore) []ProcessorInfo {
	var result []ProcessorInfo
	for _, p := range store.Processors() {
		result = append(result, ProcessorInfo{
			Manufacturer:      p.Manufacturer,
			Version:           p.Version,
			SocketDesignation: p.SocketDesignation,
			ProcessorType:     stringOf(p.ProcessorType),
			ProcessorFamily:   stringOf(p.Family),
			MaxSpeedMHz:       deref(p.MaxSpeedMHz),
			CurrentSpeedMHz:   deref(p.CurrentSpeedMHz),
			CoreCount:         deref(p.CoreCount),
			ThreadCount:       deref(p.ThreadCount),
			L2CacheSize:       cacheSize(store, p.L2CacheHandle),
			L3CacheSize:       cacheSize(store, p.L3CacheHandle),
		})
	}
	return result
}

// Processor returns the information of the first processor socket.
func Processor(store *smbios.RecordStore) ProcessorInfo {
	processors := Processors(store)
	if len(processors) == 0 {
		return ProcessorInfo{}
	}
	return processors[0]
}

func cacheSize(store *smbios.RecordStore, handle *uint16) uint64 {
	if handle == nil {
		return 0
	}
	r, ok := store.ByHandle(*handle)
	if !ok {
		return 0
	}
	cache, ok := r.(*smbios.Cache)
	if !ok {
		return 0
	}
	return deref(cache.InstalledSize)
}

// Memory returns the summary of the memory arrays and devices.
// Empty sockets are not counted.
func Memory(store *smbios.RecordStore) MemoryInfo {
	var info MemoryInfo
	for _, array := range store.PhysicalMemoryArrays() {
		info.MaxCapacity += deref(array.MaximumCapacity)
	}
	for _, d := range store.MemoryDevices() {
		if !d.IsInstalled() {
			continue
		}
		info.TotalPhysicalMemory += *d.Size
		info.MemoryDevices++
		info.Devices = append(info.Devices, MemoryDeviceInfo{
			Locator:      d.DeviceLocator,
			BankLocator:  d.BankLocator,
			Size:         *d.Size,
			Type:         stringOf(d.MemoryType),
			SpeedMTs:     deref(d.SpeedMTs),
			Manufacturer: d.Manufacturer,
			SerialNumber: Clean(d.SerialNumber),
			PartNumber:   d.PartNumber,
		})
	}
	return info
}

// Chassis returns the information of the first enclosure.
func Chassis(store *smbios.RecordStore) ChassisInfo {
	chassis := store.Chassis()
	if len(chassis) == 0 {
		return ChassisInfo{}
	}
	c := chassis[0]
	return ChassisInfo{
		Manufacturer:     c.Manufacturer,
		Type:             stringOf(c.Type),
		Version:          c.Version,
		SerialNumber:     Clean(c.SerialNumber),
		AssetTag:         Clean(c.AssetTag),
		BootUpState:      stringOf(c.BootUpState),
		PowerSupplyState: stringOf(c.PowerSupplyState),
		ThermalState:     stringOf(c.ThermalState),
	}
}

// OEMStrings returns the strings of all OEM Strings structures.
func OEMStrings(store *smbios.RecordStore) []string {
	var result []string
	for _, r := range store.Get(smbios.StructureTypeOEMStrings) {
		result = append(result, r.Raw().Strings...)
	}
	return result
}

// All returns all the categories.
func All(store *smbios.RecordStore) AllInfo {
	return AllInfo{
		BIOS:       BIOS(store),
		System:     System(store),
		Board:      Board(store),
		Processor:  Processor(store),
		Memory:     Memory(store),
		Chassis:    Chassis(store),
		OEMStrings: OEMStrings(store),
	}
}
