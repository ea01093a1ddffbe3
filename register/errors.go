// Package register provides error definitions for register access
package register

import "errors"

var (
	// ErrAddressOutOfRange is returned when a read or write lands
	// outside the register address space.
	ErrAddressOutOfRange = errors.New("register address out of range")

	// ErrBadLayout is returned when a layout has a non-positive worker
	// count or grid size.
	ErrBadLayout = errors.New("invalid register layout")

	// ErrGridSizeMismatch is returned when a grid does not match the
	// layout the file was allocated for.
	ErrGridSizeMismatch = errors.New("grid size does not match register layout")

	// ErrSnapshotTooShort is returned when snapshot data cannot hold a
	// full header.
	ErrSnapshotTooShort = errors.New("snapshot data too short")

	// ErrSnapshotMagic is returned when snapshot data does not start
	// with the snapshot magic.
	ErrSnapshotMagic = errors.New("snapshot magic mismatch")

	// ErrSnapshotVersion is returned when a snapshot was written by an
	// unsupported format version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")

	// ErrSnapshotLength is returned when the payload length does not
	// match the layout in the snapshot header.
	ErrSnapshotLength = errors.New("snapshot length mismatch")

	// ErrSnapshotChecksum is returned when the payload checksum does
	// not match the snapshot header.
	ErrSnapshotChecksum = errors.New("snapshot checksum mismatch")
)
