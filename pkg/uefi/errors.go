package uefi

import (
	"fmt"
)

// ErrParseFirmware means a problem while parsing a firmware image.
type ErrParseFirmware struct {
	Err error
}

func (err ErrParseFirmware) Error() string {
	return fmt.Sprintf("unable to parse firmware: %v", err.Err)
}

func (err ErrParseFirmware) Unwrap() error {
	return err.Err
}

// ErrFindSMBIOSStaticData means SMBIOS static data section was not found.
type ErrFindSMBIOSStaticData struct {
	Err error
}

func (err ErrFindSMBIOSStaticData) Error() string {
	return fmt.Sprintf("unable to find SMBIOS static data in the firmware: %v", err.Err)
}

func (err ErrFindSMBIOSStaticData) Unwrap() error {
	return err.Err
}

// ErrUnexpectedNodeType means firmware has an unexpected node type.
type ErrUnexpectedNodeType struct {
	Obj any
}

func (err ErrUnexpectedNodeType) Error() string {
	return fmt.Sprintf("unexpected node type: %T", err.Obj)
}
