package apu

import "testing"

func TestPulseTimerBelowEightIsSilenced(t *testing.T) {
	a := New()
	a.writePulseControl(&a.pulse1, 0x0F)
	a.pulse1.timer = 4
	a.pulse1.lengthCounter = 10
	if out := a.getPulseOutput(&a.pulse1); out != 0 {
		t.Fatalf("pulse output = %d, want 0 for timer < 8", out)
	}
}

func TestTriangleLowTimerIsNotSilenced(t *testing.T) {
	a := New()
	a.triangle.lengthCounter = 10
	a.triangle.linearCounter = 10
	a.triangle.timer = 0
	a.triangle.sequencerPos = 5
	if out := a.getTriangleOutput(&a.triangle); out != triangleTable[5] {
		t.Fatalf("triangle output = %d, want %d even at low timer period", out, triangleTable[5])
	}
}

func TestTriangleSilencedByLengthOrLinearCounter(t *testing.T) {
	a := New()
	a.triangle.linearCounter = 10
	a.triangle.lengthCounter = 0
	if out := a.getTriangleOutput(&a.triangle); out != 0 {
		t.Fatalf("triangle output = %d, want 0 when length counter is zero", out)
	}
	a.triangle.lengthCounter = 10
	a.triangle.linearCounter = 0
	if out := a.getTriangleOutput(&a.triangle); out != 0 {
		t.Fatalf("triangle output = %d, want 0 when linear counter is zero", out)
	}
}

func TestDMCTimerFetchesSampleViaMemReadAndStalls(t *testing.T) {
	a := New()
	memory := map[uint16]uint8{0x8000: 0x55}
	var stalled uint64
	a.SetMemoryReadFunc(func(addr uint16) uint8 { return memory[addr] })
	a.SetStallFunc(func(n uint64) { stalled += n })

	a.dmc.rateIndex = 0 // shortest rate, fires quickly
	a.dmc.currentAddress = 0x8000
	a.dmc.bytesRemaining = 1
	a.dmc.sampleBufferEmpty = true
	a.dmc.sampleBufferBits = 0

	for i := 0; i < int(dmcRateTable[0])+1; i++ {
		a.stepDMCTimer(&a.dmc)
	}

	if a.dmc.sampleBuffer != 0x55 {
		t.Fatalf("sampleBuffer = %#02x, want 0x55 fetched via memRead", a.dmc.sampleBuffer)
	}
	if stalled == 0 {
		t.Fatalf("expected CPU to be stalled for the DMC fetch")
	}
	if a.dmc.currentAddress != 0x8001 {
		t.Fatalf("currentAddress = %#04x, want 0x8001", a.dmc.currentAddress)
	}
}

func TestDMCAddressWrapsFromFFFFToEightThousand(t *testing.T) {
	a := New()
	a.SetMemoryReadFunc(func(addr uint16) uint8 { return 0 })
	a.SetStallFunc(func(n uint64) {})

	a.dmc.rateIndex = 0
	a.dmc.currentAddress = 0xFFFF
	a.dmc.bytesRemaining = 1
	a.dmc.sampleBufferEmpty = true
	a.dmc.sampleBufferBits = 0

	for i := 0; i < int(dmcRateTable[0])+1; i++ {
		a.stepDMCTimer(&a.dmc)
	}

	if a.dmc.currentAddress != 0x8000 {
		t.Fatalf("currentAddress after wraparound = %#04x, want 0x8000", a.dmc.currentAddress)
	}
}

func TestDMCSetsIRQOnSampleEndWithoutLoop(t *testing.T) {
	a := New()
	a.SetMemoryReadFunc(func(addr uint16) uint8 { return 0 })
	a.SetStallFunc(func(n uint64) {})

	a.dmc.rateIndex = 0
	a.dmc.irqEnable = true
	a.dmc.loop = false
	a.dmc.currentAddress = 0x8000
	a.dmc.bytesRemaining = 1
	a.dmc.sampleBufferEmpty = true
	a.dmc.sampleBufferBits = 0

	for i := 0; i < int(dmcRateTable[0])+1; i++ {
		a.stepDMCTimer(&a.dmc)
	}

	if !a.dmc.irqFlag {
		t.Fatalf("expected DMC IRQ flag set after sample ends without loop")
	}
	if !a.IRQPending() {
		t.Fatalf("IRQPending should report true when DMC IRQ flag is set")
	}
}

func TestDMCLoopsSampleInsteadOfFiringIRQ(t *testing.T) {
	a := New()
	a.SetMemoryReadFunc(func(addr uint16) uint8 { return 0 })
	a.SetStallFunc(func(n uint64) {})

	a.dmc.rateIndex = 0
	a.dmc.irqEnable = true
	a.dmc.loop = true
	a.dmc.sampleAddress = 0x9000
	a.dmc.sampleLength = 16
	a.dmc.currentAddress = 0x9000
	a.dmc.bytesRemaining = 1
	a.dmc.sampleBufferEmpty = true
	a.dmc.sampleBufferBits = 0

	for i := 0; i < int(dmcRateTable[0])+1; i++ {
		a.stepDMCTimer(&a.dmc)
	}

	if a.dmc.irqFlag {
		t.Fatalf("looped sample should not raise an IRQ")
	}
	if a.dmc.currentAddress != a.dmc.sampleAddress || a.dmc.bytesRemaining != a.dmc.sampleLength {
		t.Fatalf("looped sample should restart at sampleAddress/sampleLength")
	}
}

func TestFrameIRQPendingThroughAPU(t *testing.T) {
	a := New()
	a.frameIRQFlag = true
	if !a.IRQPending() {
		t.Fatalf("IRQPending should report true when frame IRQ flag is set")
	}
	a.ReadStatus()
	if a.frameIRQFlag {
		t.Fatalf("reading $4015 should clear the frame IRQ flag")
	}
}

func TestWriteFrameCounterFiveStepModeClocksImmediately(t *testing.T) {
	a := New()
	a.pulse1.lengthCounter = 5
	a.pulse1.lengthHalt = false
	a.writeFrameCounter(0x80) // 5-step mode
	if a.pulse1.lengthCounter != 4 {
		t.Fatalf("5-step mode write should immediately clock length counters, got %d", a.pulse1.lengthCounter)
	}
}

func TestWriteChannelEnableClearsLengthCountersWhenDisabled(t *testing.T) {
	a := New()
	a.pulse1.lengthCounter = 10
	a.writeChannelEnable(0x00)
	if a.pulse1.lengthCounter != 0 {
		t.Fatalf("disabling a channel should zero its length counter")
	}
}

func TestPulseTimerTicksAtHalfTheCPURate(t *testing.T) {
	a := New()
	a.channelEnable[0] = true
	a.pulse1.timer = 100
	a.pulse1.timerCounter = 100

	a.Step()
	if a.pulse1.timerCounter != 99 {
		t.Fatalf("pulse1.timerCounter = %d after 1 Step(), want 99 (ticks on the first APU cycle)", a.pulse1.timerCounter)
	}
	a.Step()
	if a.pulse1.timerCounter != 99 {
		t.Fatalf("pulse1.timerCounter = %d after 2 Step()s, want still 99 (APU cycle is every other CPU cycle)", a.pulse1.timerCounter)
	}
	a.Step()
	if a.pulse1.timerCounter != 98 {
		t.Fatalf("pulse1.timerCounter = %d after 3 Step()s, want 98", a.pulse1.timerCounter)
	}
}

func TestTriangleTimerTicksEveryCPUCycle(t *testing.T) {
	a := New()
	a.channelEnable[2] = true
	a.triangle.timer = 100
	a.triangle.timerCounter = 100
	a.triangle.lengthCounter = 1
	a.triangle.linearCounter = 1

	a.Step()
	if a.triangle.timerCounter != 99 {
		t.Fatalf("triangle.timerCounter = %d after 1 Step(), want 99", a.triangle.timerCounter)
	}
	a.Step()
	if a.triangle.timerCounter != 98 {
		t.Fatalf("triangle.timerCounter = %d after 2 Step()s, want 98 (ticks every CPU cycle)", a.triangle.timerCounter)
	}
}

func TestWriteChannelEnableStartsDMCSample(t *testing.T) {
	a := New()
	a.dmc.sampleAddress = 0xC100
	a.dmc.sampleLength = 32
	a.writeChannelEnable(0x10)
	if a.dmc.currentAddress != 0xC100 || a.dmc.bytesRemaining != 32 {
		t.Fatalf("enabling DMC with no bytes remaining should restart playback from sampleAddress")
	}
}
