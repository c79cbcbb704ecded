package output

import (
	"bytes"
)

// MemorySink keeps the output stream in memory. It records how many write
// operations it received, which makes separator placement observable.
type MemorySink struct {
	buf    bytes.Buffer
	Writes int
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Reset discards previous content and writes p
func (s *MemorySink) Reset(p []byte) error {
	s.buf.Reset()
	s.Writes = 1
	_, err := s.buf.Write(p)
	return err
}

// Append writes p after the current content
func (s *MemorySink) Append(p []byte) error {
	s.Writes++
	_, err := s.buf.Write(p)
	return err
}

// String returns the content written so far as a string
func (s *MemorySink) String() string {
	return s.buf.String()
}
