// ABOUTME: Tests for the ring-backed row buffer: ordering, eviction and sequence lookup

package streamtable

import (
	"fmt"
	"testing"
)

func TestRowBuffer_NewestFirstWithEviction(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 3, 7, 10} {
		t.Run(fmt.Sprintf("cap%d", capacity), func(t *testing.T) {
			t.Parallel()
			b := newRowBuffer(capacity)
			for n := 1; n <= 25; n++ {
				evicted := b.push(Row{"n": n})
				if wantEvict := n > capacity; evicted != wantEvict {
					t.Fatalf("push %d evicted = %v, want %v", n, evicted, wantEvict)
				}
				if b.len() > capacity {
					t.Fatalf("len %d exceeds capacity %d", b.len(), capacity)
				}
				want := min(n, capacity)
				if b.len() != want {
					t.Fatalf("after %d pushes len = %d, want %d", n, b.len(), want)
				}
				for i := range b.len() {
					if got := b.at(i).row["n"]; got != n-i {
						t.Fatalf("after %d pushes position %d holds %v, want %d", n, i, got, n-i)
					}
				}
			}
		})
	}
}

func TestRowBuffer_Sequences(t *testing.T) {
	t.Parallel()

	b := newRowBuffer(3)
	for i := range 5 {
		b.push(Row{"i": i})
	}
	// Sequences 3, 4, 5 remain; 5 is newest.
	if got := b.oldestSeq(); got != 3 {
		t.Errorf("oldestSeq() = %d, want 3", got)
	}
	for pos := range 3 {
		seq := b.seqAt(pos)
		if seq != b.at(pos).seq {
			t.Errorf("seqAt(%d) = %d, entry has %d", pos, seq, b.at(pos).seq)
		}
		got, ok := b.position(seq)
		if !ok || got != pos {
			t.Errorf("position(%d) = %d, %v; want %d", seq, got, ok, pos)
		}
	}
	for _, seq := range []uint64{0, 1, 2, 6} {
		if _, ok := b.position(seq); ok {
			t.Errorf("position(%d) found an evicted or future row", seq)
		}
	}
}

func TestRowBuffer_Rows(t *testing.T) {
	t.Parallel()

	b := newRowBuffer(10)
	if got := b.rows(0, 5); got != nil {
		t.Errorf("rows on empty buffer = %v", got)
	}
	for i := range 6 {
		b.push(Row{"i": i})
	}
	got := b.rows(2, 3)
	want := []int{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("rows(2,3) returned %d rows", len(got))
	}
	for i, r := range got {
		if r["i"] != want[i] {
			t.Errorf("rows(2,3)[%d] = %v, want %d", i, r["i"], want[i])
		}
	}
	if got := b.rows(4, 10); len(got) != 2 {
		t.Errorf("rows clipped at end returned %d, want 2", len(got))
	}
}

func TestSelection_PruneAndPositions(t *testing.T) {
	t.Parallel()

	b := newRowBuffer(4)
	for i := range 4 {
		b.push(Row{"i": i})
	}
	s := newSelection()
	s.toggle(b.seqAt(3))
	s.toggle(b.seqAt(1))

	if got := s.positions(b); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("positions = %v, want [1 3]", got)
	}

	b.push(Row{"i": 4})
	s.prune(b.oldestSeq())
	if s.len() != 1 {
		t.Fatalf("after eviction len = %d, want 1", s.len())
	}
	if got := s.positions(b); len(got) != 1 || got[0] != 2 {
		t.Errorf("positions after insert = %v, want [2]", got)
	}

	s.toggle(b.seqAt(2))
	if s.len() != 0 {
		t.Error("toggle twice did not restore the empty set")
	}
}
