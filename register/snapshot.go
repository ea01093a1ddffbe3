// Package register provides snapshot encoding for register images
package register

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Constants for snapshot serialization.
const (
	// SnapshotMagic identifies a register snapshot stream.
	SnapshotMagic uint32 = 0x4B505A52

	// SnapshotVersion is the current snapshot format version.
	SnapshotVersion uint16 = 1

	// SnapshotHeaderSize is the fixed size of the snapshot header in
	// bytes: magic, version, worker count, grid size and payload
	// checksum.
	SnapshotHeaderSize = 16

	// maxSnapshotWorkers bounds the worker count field of the header.
	maxSnapshotWorkers = 1<<16 - 1
)

// EncodeSnapshot serializes the whole register file, header first and
// every word big endian, so a run can be parked on disk or shipped to
// another host and resumed bit for bit.
func EncodeSnapshot(f *File) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("file is nil")
	}
	if f.layout.ParallelTasks > maxSnapshotWorkers {
		return nil, fmt.Errorf("too many workers for snapshot header: %d (max %d)",
			f.layout.ParallelTasks, maxSnapshotWorkers)
	}

	buf := make([]byte, SnapshotHeaderSize+4*len(f.words))

	payload := buf[SnapshotHeaderSize:]
	for i, w := range f.words {
		binary.BigEndian.PutUint32(payload[4*i:], w)
	}

	binary.BigEndian.PutUint32(buf[0:4], SnapshotMagic)
	binary.BigEndian.PutUint16(buf[4:6], SnapshotVersion)
	binary.BigEndian.PutUint16(buf[6:8], uint16(f.layout.ParallelTasks))
	binary.BigEndian.PutUint32(buf[8:12], uint32(f.layout.GridSize))
	binary.BigEndian.PutUint32(buf[12:16], crc32.ChecksumIEEE(payload))

	return buf, nil
}

// DecodeSnapshot reconstructs a register file from snapshot data. The
// header, payload length and checksum are all verified before any words
// are allocated, so corrupt or forged input fails without side effects.
func DecodeSnapshot(data []byte) (*File, error) {
	if len(data) < SnapshotHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes for a %d byte header",
			ErrSnapshotTooShort, len(data), SnapshotHeaderSize)
	}

	if magic := binary.BigEndian.Uint32(data[0:4]); magic != SnapshotMagic {
		return nil, fmt.Errorf("%w: %#08x", ErrSnapshotMagic, magic)
	}
	if version := binary.BigEndian.Uint16(data[4:6]); version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, version)
	}

	workers := binary.BigEndian.Uint16(data[6:8])
	gridSize := binary.BigEndian.Uint32(data[8:12])
	layout := Layout{
		ParallelTasks: int(workers),
		GridSize:      int(gridSize),
	}
	if err := layout.validate(); err != nil {
		return nil, err
	}

	// The expected word count is computed in uint64 from the raw header
	// fields; Words() on the converted layout can overflow int when the
	// grid size field is forged.
	wordCount := uint64(SeedBase) + uint64(WordsPerWorker)*uint64(workers) + 2 +
		uint64(gridSize)*uint64(gridSize)
	payload := data[SnapshotHeaderSize:]
	if len(payload)%4 != 0 || uint64(len(payload))/4 != wordCount {
		return nil, fmt.Errorf("%w: %d payload bytes for %d words",
			ErrSnapshotLength, len(payload), wordCount)
	}
	if sum := crc32.ChecksumIEEE(payload); sum != binary.BigEndian.Uint32(data[12:16]) {
		return nil, fmt.Errorf("%w: computed %#08x", ErrSnapshotChecksum, sum)
	}

	f, err := NewFile(layout)
	if err != nil {
		return nil, err
	}
	for i := range f.words {
		f.words[i] = binary.BigEndian.Uint32(payload[4*i:])
	}
	return f, nil
}
