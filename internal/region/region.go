// Package region models the three NES timing standards: NTSC, PAL, and the
// Dendy clone consoles common in the former Soviet bloc. Each region differs
// in CPU clock rate, the PPU:CPU clock ratio, and scanlines per frame.
package region

import "strings"

// Region selects a console timing standard.
type Region uint8

const (
	NTSC Region = iota
	PAL
	Dendy
)

// Timing holds the clock parameters that differ by region.
type Timing struct {
	// CPUClockHz is the 6502 clock rate in Hz.
	CPUClockHz float64
	// DotsPerCPUCycle is the PPU:CPU clock ratio (PPU dots per CPU cycle).
	DotsPerCPUCycle float64
	// ScanlinesPerFrame is the total scanline count, pre-render included.
	ScanlinesPerFrame int
	// OddFrameSkip is true when the pre-render scanline's last dot is
	// skipped on odd frames while rendering is enabled (NTSC only).
	OddFrameSkip bool
}

// For returns the timing parameters for a region.
func For(r Region) Timing {
	switch r {
	case PAL:
		return Timing{CPUClockHz: 1662607, DotsPerCPUCycle: 3.2, ScanlinesPerFrame: 312, OddFrameSkip: false}
	case Dendy:
		return Timing{CPUClockHz: 1773448, DotsPerCPUCycle: 3.2, ScanlinesPerFrame: 311, OddFrameSkip: false}
	default:
		return Timing{CPUClockHz: 1789773, DotsPerCPUCycle: 3.0, ScanlinesPerFrame: 262, OddFrameSkip: true}
	}
}

// CPUCyclesPerFrame returns the average number of CPU cycles per frame,
// derived from the dot count per scanline (341) and the region's clock
// ratio: 29780.67 for NTSC. The NTSC odd-frame dot skip, which makes some
// frames one dot shorter, is not included; PAL and Dendy have no such skip.
func (t Timing) CPUCyclesPerFrame() float64 {
	return float64(341*t.ScanlinesPerFrame) / t.DotsPerCPUCycle
}

// Parse maps a config string ("NTSC", "PAL", "Dendy", case-insensitively)
// onto a Region, defaulting to NTSC for anything unrecognized.
func Parse(s string) Region {
	switch strings.ToLower(s) {
	case "pal":
		return PAL
	case "dendy":
		return Dendy
	default:
		return NTSC
	}
}

// String returns the region's canonical config name.
func (r Region) String() string {
	switch r {
	case PAL:
		return "PAL"
	case Dendy:
		return "Dendy"
	default:
		return "NTSC"
	}
}
