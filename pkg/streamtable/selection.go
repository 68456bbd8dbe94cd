// ABOUTME: Selection set keyed by row sequence number rather than buffer position
// ABOUTME: Identities of evicted rows are pruned; positions are resolved only when drawing

package streamtable

import "slices"

type selection struct {
	ids map[uint64]struct{}
}

func newSelection() selection {
	return selection{ids: make(map[uint64]struct{})}
}

// toggle flips membership of seq.
func (s *selection) toggle(seq uint64) {
	if _, ok := s.ids[seq]; ok {
		delete(s.ids, seq)
		return
	}
	s.ids[seq] = struct{}{}
}

func (s *selection) contains(seq uint64) bool {
	_, ok := s.ids[seq]
	return ok
}

func (s *selection) len() int { return len(s.ids) }

func (s *selection) clear() { clear(s.ids) }

// prune forgets every identity older than oldest.
func (s *selection) prune(oldest uint64) {
	for id := range s.ids {
		if id < oldest {
			delete(s.ids, id)
		}
	}
}

// positions resolves the set against b, ascending.
func (s *selection) positions(b *rowBuffer) []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		if pos, ok := b.position(id); ok {
			out = append(out, pos)
		}
	}
	slices.Sort(out)
	return out
}
