package graphics

import "testing"

func TestScaleFrameIdentityIsUnchanged(t *testing.T) {
	src := []uint32{0x112233, 0x445566, 0x778899, 0xAABBCC}
	out := ScaleFrame(src, 2, 2, 2, 2, "nearest")
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("identity scale changed pixel %d: got %#06x, want %#06x", i, out[i], src[i])
		}
	}
}

func TestScaleFrameNearestUpscalesDimensions(t *testing.T) {
	src := []uint32{0xFF0000, 0x00FF00, 0x0000FF, 0xFFFFFF}
	out := ScaleFrame(src, 2, 2, 4, 4, "nearest")
	if len(out) != 16 {
		t.Fatalf("scaled frame has %d pixels, want 16", len(out))
	}
}

func TestScaleFrameNearestPreservesTopLeftColor(t *testing.T) {
	src := []uint32{0xFF0000, 0x00FF00, 0x0000FF, 0xFFFFFF}
	out := ScaleFrame(src, 2, 2, 4, 4, "nearest")
	if out[0] != 0xFF0000 {
		t.Fatalf("top-left pixel after upscale = %#06x, want 0xFF0000", out[0])
	}
}
