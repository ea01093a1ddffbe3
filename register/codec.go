// Package register provides node encoding for grid words
package register

import "github.com/surfacelab/kpzsim/grid"

// NodeMask covers the bits of a register word that encode a node. Bits
// above the mask are reserved and must survive a run unchanged.
const NodeMask uint32 = 0x3

// EncodeNode packs a node into the low bits of a register word: bit 0
// is Dx, bit 1 is Dy.
func EncodeNode(n grid.Node) uint32 {
	var w uint32
	if n.Dx {
		w |= 1
	}
	if n.Dy {
		w |= 2
	}
	return w
}

// DecodeNode unpacks the node bits of a register word, ignoring the
// reserved bits above the mask.
func DecodeNode(w uint32) grid.Node {
	return grid.Node{
		Dx: w&1 != 0,
		Dy: w&2 != 0,
	}
}
