package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale shrinks an RGB buffer so it is at most maxWidth pixels wide,
// keeping the aspect ratio. Buffers that already fit are returned as is.
func Downscale(width, height int, pix []byte, maxWidth int) (int, int, []byte, error) {
	if err := CheckBuffer(width, height, pix); err != nil {
		return 0, 0, nil, err
	}
	if maxWidth <= 0 || width <= maxWidth {
		return width, height, pix, nil
	}

	dw := maxWidth
	dh := max(1, (height*maxWidth+width/2)/width)

	src := ToRGBA(width, height, pix)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dw, dh, FromRGBA(dst), nil
}

// ToRGBA expands a packed RGB buffer into an opaque RGBA image.
func ToRGBA(width, height int, pix []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
		img.Pix[j] = pix[i]
		img.Pix[j+1] = pix[i+1]
		img.Pix[j+2] = pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FromRGBA packs an RGBA image into an RGB buffer, dropping alpha.
func FromRGBA(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*bytesPerPixel)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			out = append(out, row[i], row[i+1], row[i+2])
		}
	}
	return out
}
