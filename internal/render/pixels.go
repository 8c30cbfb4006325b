package render

import (
	"image"

	"ml-gol/pkg/rgb"
)

// PackRGB writes cells into dst as tightly packed row-major RGB triples and
// returns the slice holding them. dst is reused when it has enough capacity.
func PackRGB(dst []byte, cells []rgb.Color) []byte {
	n := 3 * len(cells)
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range cells {
		base := i * 3
		dst[base+0] = c.R
		dst[base+1] = c.G
		dst[base+2] = c.B
	}
	return dst
}

// FillRGBA converts colour cells into opaque RGBA pixels in buf.
func FillRGBA(buf []byte, cells []rgb.Color) {
	for i, c := range cells {
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = 0xff
	}
}

// NRGBAFromPacked expands a packed RGB buffer of width*height pixels into an
// opaque image suitable for the standard encoders.
func NRGBAFromPacked(pixels []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := pixels[y*width*3 : (y+1)*width*3]
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+0] = src[x*3+0]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3+2]
			row[x*4+3] = 0xff
		}
	}
	return img
}
