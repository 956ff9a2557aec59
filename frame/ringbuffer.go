// Package frame implements the two stateful byte-stream-to-frame
// splitters used by the proxy: the Aurora in-game packet envelope and
// the Bnet RPC envelope. Both are built on a shared bounded ring
// buffer, grounded on hearthy.proxy.pipe.SimpleBuf.
package frame

import "github.com/hearthy-oss/hearthproxy/herr"

// RingBuffer is a bounded byte container fed with arbitrary chunks.
// Internally it is a single fixed-size array with a logical
// [start, end) window; Append compacts the window down to offset 0
// only when the incoming chunk would otherwise run past the backing
// array's end, mirroring SimpleBuf.append's two branches.
type RingBuffer struct {
	buf   []byte
	start int
	end   int
}

// NewRingBuffer creates a ring buffer with the given fixed capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]byte, capacity)}
}

// Used returns the number of unconsumed bytes currently held.
func (r *RingBuffer) Used() int { return r.end - r.start }

// Free returns the remaining capacity.
func (r *RingBuffer) Free() int { return len(r.buf) - r.Used() }

// Append appends data, compacting the backing array toward offset 0
// first if data would not otherwise fit past the array's physical end.
// Fails with BufferFull if data does not fit even after compaction.
func (r *RingBuffer) Append(data []byte) error {
	n := len(data)
	if n > r.Free() {
		return herr.New(herr.BufferFull, "ring buffer: need %d bytes, only %d free", n, r.Free())
	}
	if n <= len(r.buf)-r.end {
		copy(r.buf[r.end:], data)
		r.end += n
		return nil
	}
	used := r.Used()
	copy(r.buf, r.buf[r.start:r.end])
	r.start = 0
	r.end = used
	copy(r.buf[r.end:], data)
	r.end += n
	return nil
}

// Clear discards all buffered data without returning it.
func (r *RingBuffer) Clear() {
	r.start = 0
	r.end = 0
}

// Last returns the most recently appended n bytes without consuming
// them.
func (r *RingBuffer) Last(n int) []byte {
	return r.buf[r.end-n : r.end]
}

// Peek returns n bytes starting offset bytes past start, without
// consuming them.
func (r *RingBuffer) Peek(n, offset int) []byte {
	return r.buf[r.start+offset : r.start+offset+n]
}

// Consume drops the first n bytes from the logical window.
func (r *RingBuffer) Consume(n int) {
	r.start += n
}

// Retract un-appends the last n bytes, shrinking the logical window
// from the end. Used by the interception pipe to steal just-pulled
// bytes out of the forwarding buffer once they have been copied into a
// splitter for decoding, so only re-encoded packets (not the raw
// bytes) end up forwarded.
func (r *RingBuffer) Retract(n int) {
	r.end -= n
}
