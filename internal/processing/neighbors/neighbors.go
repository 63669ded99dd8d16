// Package neighbors samples the 8-neighbourhood of a pixel in a one byte per
// pixel bitmap. Neighbours outside the image are background.
package neighbors

// Direction indexes a Pattern.
type Direction int

const (
	NW Direction = iota
	N
	NE
	W
	E
	SW
	S
	SE
)

var (
	dx = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}

	// weights pack a Pattern into the index of a lookup table:
	//   128   1   2
	//    64   .   4
	//    32  16   8
	weights = [8]uint8{128, 1, 2, 64, 4, 32, 16, 8}
)

// Pattern holds the foreground state of the eight neighbours.
type Pattern [8]bool

// Weight packs the pattern into 0..255.
func (p Pattern) Weight() uint8 {
	var w uint8
	for d, set := range p {
		if set {
			w += weights[d]
		}
	}
	return w
}

// Count returns the number of foreground neighbours.
func (p Pattern) Count() int {
	n := 0
	for _, set := range p {
		if set {
			n++
		}
	}
	return n
}

// TouchesEdge reports whether any of N, W, E, S is background.
func (p Pattern) TouchesEdge() bool {
	return !(p[N] && p[W] && p[E] && p[S])
}

// TouchesCorner reports whether any of NW, NE, SW, SE is background.
func (p Pattern) TouchesCorner() bool {
	return !(p[NW] && p[NE] && p[SW] && p[SE])
}

// Sampler reads neighbourhoods from a width x height bitmap in which any
// non-zero byte is foreground.
type Sampler struct {
	width  int
	height int
}

func NewSampler(width, height int) Sampler {
	return Sampler{width: width, height: height}
}

func (s Sampler) Width() int  { return s.width }
func (s Sampler) Height() int { return s.height }

// Neighbor returns the flat index of the neighbour of index in direction d,
// and false when it falls outside the image.
func (s Sampler) Neighbor(index int, d Direction) (int, bool) {
	x := index%s.width + dx[d]
	y := index/s.width + dy[d]
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Sample returns the neighbourhood of the pixel at flat index.
func (s Sampler) Sample(bitmap []uint8, index int) Pattern {
	var p Pattern
	for d := NW; d <= SE; d++ {
		if j, ok := s.Neighbor(index, d); ok {
			p[d] = bitmap[j] > 0
		}
	}
	return p
}

// Table is a 256-entry bit table stored as sixteen 16-bit rows; the bit for
// weight w is bit 15-(w%16) of row w/16.
type Table [16]uint16

func (t *Table) Matches(weight uint8) bool {
	return t[weight/16]&(0x8000>>(weight%16)) != 0
}

// Matches looks the pattern up in the table.
func (p Pattern) Matches(t *Table) bool {
	return t.Matches(p.Weight())
}
