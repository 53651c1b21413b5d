package buffer

import "sync"

// Synchronized serializes access to a Buffer shared between goroutines.
//
// Calls that can write or grow the region hold the write lock, so no reader observes a
// region swap in progress. Readers share the read lock.
type Synchronized struct {
	mu  sync.RWMutex
	buf *Buffer
}

// NewSynchronized wraps buf. The caller must stop using buf directly.
func NewSynchronized(buf *Buffer) *Synchronized {
	return &Synchronized{buf: buf}
}

func (s *Synchronized) Append(rec Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.Append(rec)
}

func (s *Synchronized) Set(index int, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.Set(index, rec)
}

func (s *Synchronized) SetAttribute(index int, name string, component int, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.SetAttribute(index, name, component, value)
}

func (s *Synchronized) Get(index int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buf.Get(index)
}

func (s *Synchronized) GetAttribute(index int, name string, component int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buf.GetAttribute(index, name, component)
}

func (s *Synchronized) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buf.Len()
}

func (s *Synchronized) ByteLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buf.ByteLength()
}

// CopyBytes returns a copy of the written bytes. Unlike Buffer.Bytes the result stays
// valid after later writes.
func (s *Synchronized) CopyBytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buf.CopyBytes()
}

func (s *Synchronized) Layout() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buf.Layout()
}

// Update runs fn with exclusive access to the underlying buffer, for batches of writes
// that must appear atomic to readers. fn must not retain the buffer.
func (s *Synchronized) Update(fn func(*Buffer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.buf)
}

// View runs fn with shared access to the underlying buffer. fn must not write.
func (s *Synchronized) View(fn func(*Buffer) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.buf)
}

func (s *Synchronized) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Release()
}
