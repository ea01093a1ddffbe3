package prng

import (
	"errors"
	"testing"
)

func TestTableSourceOrder(t *testing.T) {
	src := NewTableSourceFrom([]uint32{0x11111111, 0x22222222, 0x33333333, 0x44444444})

	first, err := src.State()
	if err != nil {
		t.Fatalf("First state failed: %v", err)
	}
	if first != FromWords(0x11111111, 0x22222222) {
		t.Errorf("Expected %#016x, got %#016x", uint64(FromWords(0x11111111, 0x22222222)), uint64(first))
	}

	second, err := src.State()
	if err != nil {
		t.Fatalf("Second state failed: %v", err)
	}
	if second != FromWords(0x33333333, 0x44444444) {
		t.Errorf("Expected %#016x, got %#016x", uint64(FromWords(0x33333333, 0x44444444)), uint64(second))
	}
}

func TestTableSourceExhaustion(t *testing.T) {
	src := NewTableSourceFrom([]uint32{1, 2, 3})

	if _, err := src.State(); err != nil {
		t.Fatalf("First state failed: %v", err)
	}
	// A single trailing word cannot form a state.
	if _, err := src.State(); !errors.Is(err, ErrTableExhausted) {
		t.Errorf("Expected ErrTableExhausted, got %v", err)
	}
}

func TestPublishedTable(t *testing.T) {
	src := NewTableSource()
	for i := 0; i < len(SeedTable)/2; i++ {
		st, err := src.State()
		if err != nil {
			t.Fatalf("State %d failed: %v", i, err)
		}
		if st == 0 {
			t.Errorf("State %d: published table must not contain the zero state", i)
		}
		if st.Lo() != SeedTable[2*i] || st.Hi() != SeedTable[2*i+1] {
			t.Errorf("State %d: expected words %#08x,%#08x, got %#08x,%#08x",
				i, SeedTable[2*i], SeedTable[2*i+1], st.Lo(), st.Hi())
		}
	}
	if _, err := src.State(); !errors.Is(err, ErrTableExhausted) {
		t.Errorf("Expected ErrTableExhausted after %d states, got %v", len(SeedTable)/2, err)
	}
}

func TestCryptoSource(t *testing.T) {
	src := NewCryptoSource()
	st, err := src.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if st == 0 {
		t.Error("Expected a non-zero state")
	}
}
