package memory

import (
	"testing"

	"gones/internal/cartridge"
)

type stubPPU struct{ last uint16 }

func (s *stubPPU) ReadRegister(addr uint16) uint8        { s.last = addr; return 0x42 }
func (s *stubPPU) WriteRegister(addr uint16, value uint8) { s.last = addr }

type stubAPU struct{}

func (s *stubAPU) WriteRegister(addr uint16, value uint8) {}
func (s *stubAPU) ReadStatus() uint8                       { return 0x55 }

type stubCart struct{ prg, chr [0x10]uint8 }

func (c *stubCart) ReadPRG(addr uint16) uint8         { return c.prg[addr%0x10] }
func (c *stubCart) WritePRG(addr uint16, value uint8) { c.prg[addr%0x10] = value }
func (c *stubCart) ReadCHR(addr uint16) uint8         { return c.chr[addr%0x10] }
func (c *stubCart) WriteCHR(addr uint16, value uint8) { c.chr[addr%0x10] = value }

func TestRAMMirroring(t *testing.T) {
	m := New(&stubPPU{}, &stubAPU{}, &stubCart{})
	m.Write(0x0000, 0x7A)
	if got := m.Read(0x0800); got != 0x7A {
		t.Fatalf("mirror read at 0x0800 = %#02x, want 0x7a", got)
	}
	if got := m.Read(0x1800); got != 0x7A {
		t.Fatalf("mirror read at 0x1800 = %#02x, want 0x7a", got)
	}
}

func TestRAMInitPolicies(t *testing.T) {
	zero := New(&stubPPU{}, &stubAPU{}, &stubCart{})
	if zero.Read(0x0001) != 0 {
		t.Fatalf("zero policy: ram[1] != 0")
	}
	ff := NewWithPolicy(&stubPPU{}, &stubAPU{}, &stubCart{}, RAMInitFF, nil)
	if ff.Read(0x0001) != 0xFF {
		t.Fatalf("ff policy: ram[1] != 0xff")
	}
}

func TestOpenBusLingers(t *testing.T) {
	m := New(&stubPPU{}, &stubAPU{}, &stubCart{})
	m.Write(0x0000, 0x99)
	m.Read(0x0000)
	if got := m.Read(0x4018); got != 0x99 {
		t.Fatalf("open bus read = %#02x, want 0x99 (last value read)", got)
	}
}

func TestPPUMemoryHorizontalMirroring(t *testing.T) {
	pm := NewPPUMemory(&stubCart{}, cartridge.MirrorHorizontal)
	pm.Write(0x2000, 0x11)
	if got := pm.Read(0x2400); got != 0x11 {
		t.Fatalf("horizontal mirror: $2400 = %#02x, want 0x11", got)
	}
	pm.Write(0x2800, 0x22)
	if got := pm.Read(0x2C00); got != 0x22 {
		t.Fatalf("horizontal mirror: $2C00 = %#02x, want 0x22", got)
	}
}

func TestPaletteBackgroundMirroring(t *testing.T) {
	pm := NewPPUMemory(&stubCart{}, cartridge.MirrorHorizontal)
	pm.Write(0x3F00, 0x0F)
	pm.Write(0x3F10, 0x3A)
	if got := pm.Read(0x3F00); got != 0x3A {
		t.Fatalf("$3F00 = %#02x, want 0x3a ($3F10 aliases it)", got)
	}
}
