package render

import "image/color"

var (
	background  = color.RGBA{245, 245, 240, 255}
	gridFill    = color.RGBA{230, 230, 225, 255}
	gridLine    = color.RGBA{220, 220, 215, 255}
	outline     = color.RGBA{90, 90, 90, 255}
	highlight   = color.RGBA{255, 255, 255, 120}
	overlayFill = color.RGBA{30, 30, 30, 170}
)
