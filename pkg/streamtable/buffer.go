// ABOUTME: Bounded newest-first row buffer backed by a ring; O(1) insert and eviction
// ABOUTME: Every row gets a monotonic sequence number so selections survive position shifts

package streamtable

// DefaultMaxRows is the buffer capacity when Config.MaxRows is zero.
const DefaultMaxRows = 100_000

type entry struct {
	seq uint64
	row Row
}

// rowBuffer holds at most capacity rows. Position 0 is the newest row.
// Sequence numbers are contiguous, so position i always holds lastSeq-i.
type rowBuffer struct {
	slots    []entry
	next     int // slot the next row is written to
	capacity int
	lastSeq  uint64
}

func newRowBuffer(capacity int) *rowBuffer {
	return &rowBuffer{
		slots:    make([]entry, 0, min(capacity, 1024)),
		capacity: capacity,
	}
}

func (b *rowBuffer) len() int { return len(b.slots) }

// push inserts row at position 0. When the buffer was full the oldest row is
// dropped and evicted reports true.
func (b *rowBuffer) push(row Row) (evicted bool) {
	b.lastSeq++
	e := entry{seq: b.lastSeq, row: row}
	if len(b.slots) < b.capacity {
		b.slots = append(b.slots, e)
		b.next = len(b.slots) % b.capacity
		return false
	}
	b.slots[b.next] = e
	b.next = (b.next + 1) % b.capacity
	return true
}

// at returns the entry at position i; 0 <= i < len().
func (b *rowBuffer) at(i int) entry {
	n := len(b.slots)
	return b.slots[((b.next-1-i)%n+n)%n]
}

// oldestSeq is the sequence number of the last position, or lastSeq+1 when
// the buffer is empty.
func (b *rowBuffer) oldestSeq() uint64 {
	return b.lastSeq - uint64(len(b.slots)) + 1
}

// position returns where the row with sequence seq currently sits.
func (b *rowBuffer) position(seq uint64) (int, bool) {
	if seq > b.lastSeq || seq < b.oldestSeq() {
		return 0, false
	}
	return int(b.lastSeq - seq), true
}

// seqAt returns the sequence number at position i.
func (b *rowBuffer) seqAt(i int) uint64 {
	return b.lastSeq - uint64(i)
}

// rows returns up to n rows starting at position from, newest first.
func (b *rowBuffer) rows(from, n int) []Row {
	if from < 0 {
		from = 0
	}
	end := min(from+n, len(b.slots))
	if from >= end {
		return nil
	}
	out := make([]Row, 0, end-from)
	for i := from; i < end; i++ {
		out = append(out, b.at(i).row)
	}
	return out
}
