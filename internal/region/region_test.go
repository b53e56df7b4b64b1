package region

import "testing"

func TestForReturnsDistinctScanlineCounts(t *testing.T) {
	cases := map[Region]int{
		NTSC:  262,
		PAL:   312,
		Dendy: 311,
	}
	for r, want := range cases {
		if got := For(r).ScanlinesPerFrame; got != want {
			t.Errorf("For(%v).ScanlinesPerFrame = %d, want %d", r, got, want)
		}
	}
}

func TestOnlyNTSCSkipsOddFrameDot(t *testing.T) {
	if !For(NTSC).OddFrameSkip {
		t.Error("NTSC should skip the pre-render's last dot on odd frames")
	}
	if For(PAL).OddFrameSkip {
		t.Error("PAL should not skip the pre-render's last dot")
	}
	if For(Dendy).OddFrameSkip {
		t.Error("Dendy should not skip the pre-render's last dot")
	}
}

func TestParseRoundTripsString(t *testing.T) {
	for _, r := range []Region{NTSC, PAL, Dendy} {
		if got := Parse(r.String()); got != r {
			t.Errorf("Parse(%q) = %v, want %v", r.String(), got, r)
		}
	}
}

func TestParseDefaultsToNTSC(t *testing.T) {
	if got := Parse("unknown"); got != NTSC {
		t.Errorf("Parse(\"unknown\") = %v, want NTSC", got)
	}
}

func TestCPUCyclesPerFrameApproximatesKnownNTSCValue(t *testing.T) {
	got := For(NTSC).CPUCyclesPerFrame()
	if got < 29780 || got > 29782 {
		t.Errorf("NTSC CPUCyclesPerFrame() = %v, want ~29780.67", got)
	}
}
