// Package palette holds the block colors shared by every frontend.
package palette

import "image/color"

// Colors holds the pastel block colors. Its length is the session color
// count.
var Colors = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{255, 223, 186, 255},
	{186, 255, 201, 255},
	{255, 200, 221, 255},
	{186, 225, 255, 255},
	{255, 255, 186, 255},
	{217, 186, 255, 255},
}

// At returns the color for index i, wrapping out of range indices.
func At(i int) color.RGBA {
	n := len(Colors)
	return Colors[((i%n)+n)%n]
}

// Fade returns c with its alpha scaled by a in [0, 1]. Colors are
// premultiplied, so every channel is scaled.
func Fade(c color.RGBA, a float64) color.RGBA {
	a = max(0, min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
