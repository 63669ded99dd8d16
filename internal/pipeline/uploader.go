package pipeline

import (
	"fmt"
	"sync"

	"skeleton-workbench/internal/algorithms/descriptor"
)

// MemoryUploader is an in-process stand-in for the renderer's descriptor
// buffer: a fixed MaxSize byte region written at offsets.
type MemoryUploader struct {
	mu      sync.Mutex
	buffer  [descriptor.MaxSize]byte
	uploads int
	last    int
}

func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{}
}

func (u *MemoryUploader) Upload(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > descriptor.MaxSize {
		return fmt.Errorf("%w: %d bytes at offset %d", ErrDescriptorTooLarge, len(data), offset)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	copy(u.buffer[offset:], data)
	u.uploads++
	u.last = len(data)
	return nil
}

// Bytes returns a copy of the first n bytes of the buffer.
func (u *MemoryUploader) Bytes(n int) []byte {
	u.mu.Lock()
	defer u.mu.Unlock()

	if n > descriptor.MaxSize {
		n = descriptor.MaxSize
	}
	out := make([]byte, n)
	copy(out, u.buffer[:n])
	return out
}

// Uploads reports how many uploads were made and the size of the last one.
func (u *MemoryUploader) Uploads() (count, lastSize int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads, u.last
}
