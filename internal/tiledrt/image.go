package tiledrt

import (
	"image"
	"image/color"
)

// ToImage deswizzles the BGRA8Unorm color plane into a standard
// image.Image, for test assertions (present_linear deswizzles through
// StoreTile/StoreTilePartial instead).
// Never call this on the hot rasterization path; it exists purely as a
// debug/test convenience, mirroring the teacher's Pixmap.ToImage.
func (rt *RenderTarget) ToImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, rt.Width, rt.Height))
	for y := 0; y < rt.Height; y++ {
		for x := 0; x < rt.Width; x++ {
			off := rt.swizzleOffset(x, y)
			b, g, r, a := rt.data[off], rt.data[off+1], rt.data[off+2], rt.data[off+3]
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}
