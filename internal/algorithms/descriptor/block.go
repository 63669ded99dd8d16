// Package descriptor serializes algorithm parameters into the fixed-layout
// byte blocks the renderer uploads verbatim into its descriptor buffer.
//
// Scalars are little-endian and naturally aligned; vector fields start on a
// 16-byte boundary.
package descriptor

import (
	"encoding/binary"
	"math"
)

// MaxSize is the capacity of the renderer's descriptor buffer.
const MaxSize = 4096

const vectorAlignment = 16

// Block accumulates one descriptor's bytes.
type Block struct {
	buf []byte
}

func NewBlock(capacity int) *Block {
	return &Block{buf: make([]byte, 0, capacity)}
}

// Align pads the block with zeros up to the next multiple of n.
func (b *Block) Align(n int) *Block {
	for len(b.buf)%n != 0 {
		b.buf = append(b.buf, 0)
	}
	return b
}

func (b *Block) Int32(v int32) *Block {
	b.Align(4)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
	return b
}

// Bool writes a 32-bit boolean (0 or 1), the width shader bools occupy.
func (b *Block) Bool(v bool) *Block {
	if v {
		return b.Int32(1)
	}
	return b.Int32(0)
}

func (b *Block) Float32(v float32) *Block {
	b.Align(4)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, math.Float32bits(v))
	return b
}

func (b *Block) Float32s(vs []float32) *Block {
	for _, v := range vs {
		b.Float32(v)
	}
	return b
}

// Vec3 writes three floats starting on a 16-byte boundary and pads the
// field to 16 bytes.
func (b *Block) Vec3(v [3]float32) *Block {
	b.Align(vectorAlignment)
	b.Float32s(v[:])
	return b.Align(vectorAlignment)
}

func (b *Block) Len() int { return len(b.buf) }

func (b *Block) Bytes() []byte { return b.buf }
