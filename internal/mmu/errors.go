package mmu

import (
	"errors"
	"fmt"
)

// ErrReadOnly is matched by every ReadOnlyError.
var ErrReadOnly = errors.New("mmu: write to read-only region")

// ReadOnlyError is returned when a write targets the boot
// overlay or the cartridge ROM. The write has no effect.
type ReadOnlyError struct {
	Address uint16
	Value   uint8
	Region  Region
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("mmu: write of 0x%02X to %s at 0x%04X", e.Value, e.Region, e.Address)
}

func (e *ReadOnlyError) Unwrap() error {
	return ErrReadOnly
}

// InvalidAddressError reports an address the routing table does
// not cover. It is only ever raised while building the table and
// indicates a defect in the table itself.
type InvalidAddressError struct {
	Address uint16
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("mmu: no region mapped at 0x%04X", e.Address)
}

// ImageError is returned by LoadImage when an image can not be
// loaded into the requested region.
type ImageError struct {
	Region Region
	Err    error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("mmu: loading %s image: %v", e.Region, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}
