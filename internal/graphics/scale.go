package graphics

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ScaleFrame resizes a flat RGB frame buffer from (srcW,srcH) to (dstW,dstH)
// using golang.org/x/image/draw, returning a new flat buffer at the
// destination size. filter selects the scaler: "linear" uses bilinear
// interpolation; anything else (including "nearest", the default) uses
// nearest-neighbor, matching the hard pixel edges most NES upscaling wants.
func ScaleFrame(src []uint32, srcW, srcH, dstW, dstH int, filter string) []uint32 {
	if dstW == srcW && dstH == srcH {
		out := make([]uint32, len(src))
		copy(out, src)
		return out
	}

	srcImg := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	for i, pixel := range src {
		srcImg.SetRGBA(i%srcW, i/srcW, color.RGBA{
			R: uint8(pixel >> 16),
			G: uint8(pixel >> 8),
			B: uint8(pixel),
			A: 0xFF,
		})
	}

	dstImg := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	scaler := draw.Scaler(draw.NearestNeighbor)
	if filter == "linear" {
		scaler = draw.BiLinear
	}
	scaler.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	out := make([]uint32, dstW*dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			c := dstImg.RGBAAt(x, y)
			out[y*dstW+x] = (uint32(c.R) << 16) | (uint32(c.G) << 8) | uint32(c.B)
		}
	}
	return out
}
