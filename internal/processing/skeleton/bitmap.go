package skeleton

import "skeleton-workbench/internal/models"

// Channel-0 byte values of the caller's buffer. A pixel is foreground iff
// its first channel equals Ink; write-back paints R, G and B.
const (
	Ink        uint8 = 0
	Background uint8 = 255
)

// Working bitmap states.
const (
	stateBackground uint8 = iota
	stateForeground
	stateEdge
	stateCorner
	stateMarked
)

// Extract builds a one byte per pixel working bitmap from img.
func Extract(img *models.Image) []uint8 {
	bitmap := make([]uint8, img.Width*img.Height)
	for j, i := 0, 0; j < len(bitmap); j, i = j+1, i+img.Channels {
		if img.Pixels[i] == Ink {
			bitmap[j] = stateForeground
		}
	}
	return bitmap
}

// WriteBack paints the bitmap into the colour channels of img. Channels past
// the third are left untouched.
func WriteBack(img *models.Image, bitmap []uint8) {
	for j, i := 0, 0; j < len(bitmap); j, i = j+1, i+img.Channels {
		v := Background
		if bitmap[j] != stateBackground {
			v = Ink
		}
		img.Pixels[i+0] = v
		img.Pixels[i+1] = v
		img.Pixels[i+2] = v
	}
}

func countForeground(bitmap []uint8) int {
	n := 0
	for _, v := range bitmap {
		if v != stateBackground {
			n++
		}
	}
	return n
}
