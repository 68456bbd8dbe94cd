// ABOUTME: Tests for minimal-motion scrolling and cursor bounds

package streamtable

import "testing"

func TestViewport_Adjust(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cursor     int
		offset     int
		h          int
		wantOffset int
	}{
		{name: "in view", cursor: 3, offset: 1, h: 5, wantOffset: 1},
		{name: "above", cursor: 2, offset: 4, h: 5, wantOffset: 2},
		{name: "below", cursor: 9, offset: 0, h: 5, wantOffset: 5},
		{name: "last visible row", cursor: 4, offset: 0, h: 5, wantOffset: 0},
		{name: "first hidden row", cursor: 5, offset: 0, h: 5, wantOffset: 1},
		{name: "no body rows", cursor: 3, offset: 0, h: 0, wantOffset: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := viewport{cursor: tt.cursor, offset: tt.offset}
			v.adjust(tt.h)
			if v.offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", v.offset, tt.wantOffset)
			}
			v.adjust(tt.h)
			if v.offset != tt.wantOffset {
				t.Errorf("second adjust moved offset to %d", v.offset)
			}
		})
	}
}

func TestViewport_Bounds(t *testing.T) {
	t.Parallel()

	const size, h = 6, 3
	var v viewport

	if v.up(h) {
		t.Error("up at row 0 reported a move")
	}
	for range 20 {
		v.down(size, h)
		if v.cursor < 0 || v.cursor > size-1 {
			t.Fatalf("cursor %d out of [0,%d]", v.cursor, size-1)
		}
		if v.cursor < v.offset || v.cursor >= v.offset+h {
			t.Fatalf("cursor %d outside view at offset %d", v.cursor, v.offset)
		}
	}
	if v.cursor != size-1 || v.offset != size-h {
		t.Errorf("after scrolling down: cursor %d offset %d", v.cursor, v.offset)
	}
	if v.down(size, h) {
		t.Error("down at last row reported a move")
	}
	for range 20 {
		v.up(h)
	}
	if v.cursor != 0 || v.offset != 0 {
		t.Errorf("after scrolling up: cursor %d offset %d", v.cursor, v.offset)
	}

	var empty viewport
	if empty.down(0, h) {
		t.Error("down on empty buffer moved")
	}
}

func TestViewport_ShiftAndClamp(t *testing.T) {
	t.Parallel()

	v := viewport{cursor: 2, offset: 1}
	v.shift(1, 10, 4)
	if v.cursor != 3 || v.offset != 2 {
		t.Errorf("shift: cursor %d offset %d, want 3 2", v.cursor, v.offset)
	}

	v = viewport{cursor: 4, offset: 3}
	v.shift(1, 5, 4)
	if v.cursor != 4 {
		t.Errorf("shift past end: cursor %d, want 4", v.cursor)
	}

	v = viewport{cursor: 8, offset: 7}
	v.clamp(3, 10)
	if v.cursor != 2 || v.offset != 0 {
		t.Errorf("clamp: cursor %d offset %d, want 2 0", v.cursor, v.offset)
	}
}

func TestViewport_ClampFillsBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cursor     int
		offset     int
		size       int
		h          int
		wantCursor int
		wantOffset int
	}{
		{name: "pinned past the end", cursor: 60, offset: 60, size: 50, h: 8, wantCursor: 49, wantOffset: 42},
		{name: "short buffer", cursor: 3, offset: 3, size: 4, h: 8, wantCursor: 3, wantOffset: 0},
		{name: "already full", cursor: 5, offset: 2, size: 50, h: 8, wantCursor: 5, wantOffset: 2},
		{name: "scrolled to bottom", cursor: 49, offset: 42, size: 50, h: 8, wantCursor: 49, wantOffset: 42},
		{name: "no body rows", cursor: 7, offset: 7, size: 5, h: 0, wantCursor: 4, wantOffset: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := viewport{cursor: tt.cursor, offset: tt.offset}
			v.clamp(tt.size, tt.h)
			if v.cursor != tt.wantCursor || v.offset != tt.wantOffset {
				t.Errorf("clamp(%d, %d): cursor %d offset %d, want %d %d",
					tt.size, tt.h, v.cursor, v.offset, tt.wantCursor, tt.wantOffset)
			}
		})
	}
}
