// Package register provides tests for node encoding/decoding
package register

import (
	"testing"

	"github.com/surfacelab/kpzsim/grid"
)

func TestNodeCodec(t *testing.T) {
	tests := []struct {
		name string
		node grid.Node
		word uint32
	}{
		{"clear", grid.Node{}, 0},
		{"dx", grid.Node{Dx: true}, 1},
		{"dy", grid.Node{Dy: true}, 2},
		{"both", grid.Node{Dx: true, Dy: true}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeNode(tt.node); got != tt.word {
				t.Errorf("Expected word %d, got %d", tt.word, got)
			}
			if got := DecodeNode(tt.word); got != tt.node {
				t.Errorf("Expected node %+v, got %+v", tt.node, got)
			}
		})
	}
}

func TestDecodeNodeIgnoresReservedBits(t *testing.T) {
	if got := DecodeNode(0xFFFFFFFD); got != (grid.Node{Dx: true}) {
		t.Errorf("Expected reserved bits ignored, got %+v", got)
	}
}
