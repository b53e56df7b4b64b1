package input

import "testing"

func TestControllerReadSequenceMatchesButtonOrder(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, true, false, false, false, false, true}) // A, Sel, Right

	c.Write(1) // strobe high
	c.Write(0) // strobe low, latch snapshot

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestControllerReadPastEighthBitReturnsOne(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if got := c.Read(); got != 1 {
		t.Fatalf("9th read = %d, want 1 (open bus)", got)
	}
}

func TestControllerStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(1) // strobe held high
	if got := c.Read(); got != 1 {
		t.Fatalf("strobed read = %d, want 1", got)
	}
	if got := c.Read(); got != 1 {
		t.Fatalf("repeated strobed read = %d, want 1 (no advance while strobed)", got)
	}
}

func TestTurboSilencesButtonOnOffPhase(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetTurbo(ButtonA, true)

	// Phase starts false (off): turbo button should read released.
	c.Write(1)
	c.Write(0)
	if got := c.Read(); got != 0 {
		t.Fatalf("turbo A on off-phase = %d, want 0", got)
	}

	c.TickTurboFrame()
	c.TickTurboFrame()
	// After 2 ticks the phase flips to true (on).
	c.Write(1)
	c.Write(0)
	if got := c.Read(); got != 1 {
		t.Fatalf("turbo A on on-phase = %d, want 1", got)
	}
}

func TestNonTurboButtonUnaffectedByPhase(t *testing.T) {
	c := New()
	c.SetButton(ButtonB, true)
	c.SetTurbo(ButtonA, true) // only A is turbo

	c.Write(1)
	c.Write(0)
	c.Read() // A
	if got := c.Read(); got != 1 {
		t.Fatalf("non-turbo B = %d, want 1 regardless of turbo phase", got)
	}
}

func TestInputStateController2OpenBusBitSet(t *testing.T) {
	is := NewInputState()
	if got := is.Read(0x4017); got&0x40 == 0 {
		t.Fatalf("$4017 read = %#02x, want bit 6 set", got)
	}
}

func TestZapperTriggerLatchesAcrossReads(t *testing.T) {
	z := NewZapper()
	z.Trigger(true)
	if got := z.Sense([ppuFrameSize]uint16{}, 0, 0); got&0x10 == 0 {
		t.Fatalf("trigger bit not set immediately after press")
	}
	z.Trigger(false)
	if got := z.Sense([ppuFrameSize]uint16{}, 0, 0); got&0x10 == 0 {
		t.Fatalf("trigger bit should stay latched briefly after release")
	}
	for i := 0; i < 5; i++ {
		z.EndFrame()
	}
	if got := z.Sense([ppuFrameSize]uint16{}, 0, 0); got&0x10 != 0 {
		t.Fatalf("trigger bit should clear once the latch decays")
	}
}

func TestZapperLightSenseOutsidePersistenceWindowReadsDark(t *testing.T) {
	z := NewZapper()
	z.SetAim(10, 5)
	var frame [ppuFrameSize]uint16
	frame[5*256+10] = 0x30 // a bright-ish palette entry

	beamDot := 5*341 + 10
	farBeamDot := beamDot + zapperSenseWindowDots + 10
	if got := z.Sense(frame, farBeamDot/341, farBeamDot%341); got&0x08 == 0 {
		t.Fatalf("light sense bit should read dark (set) well outside the persistence window")
	}
}

const ppuFrameSize = 256 * 240
