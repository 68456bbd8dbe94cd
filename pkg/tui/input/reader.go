// ABOUTME: Reader turns a raw byte stream (stdin in raw mode) into a queue of parsed keys
// ABOUTME: Next is non-blocking: an empty queue is a valid "no key" result, not an error

package input

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/mauromedda/streamtable/pkg/tui/key"
)

const (
	readBufSize  = 256
	maxSeqLen    = 8
	DefaultDepth = 64
)

// Reader reads from an io.Reader on its own goroutine and queues keys.
type Reader struct {
	src   io.Reader
	keys  chan key.Key
	done  chan struct{}
	start sync.Once
	stop  sync.Once

	mu  sync.Mutex
	err error
}

// NewReader creates a Reader queueing at most depth keys. Keys arriving
// while the queue is full are dropped.
func NewReader(src io.Reader, depth int) *Reader {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Reader{
		src:  src,
		keys: make(chan key.Key, depth),
		done: make(chan struct{}),
	}
}

// Start launches the read goroutine. Calling it more than once is a no-op.
func (r *Reader) Start() {
	r.start.Do(func() { go r.readLoop() })
}

// Close stops queueing keys. A Read already blocked in the underlying
// reader returns whenever that reader does.
func (r *Reader) Close() {
	r.stop.Do(func() { close(r.done) })
}

// Next returns the oldest queued key, or ok == false when none is pending.
func (r *Reader) Next() (k key.Key, ok bool) {
	select {
	case k = <-r.keys:
		return k, true
	default:
		return key.Key{}, false
	}
}

// Err returns the error that ended the read loop, if any. io.EOF is
// reported as nil.
func (r *Reader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Reader) readLoop() {
	tmp := make([]byte, readBufSize)
	var pending []byte
	for {
		n, err := r.src.Read(tmp)
		if n > 0 {
			pending = append(pending, tmp[:n]...)
			var parsed []key.Key
			parsed, pending = Split(pending)
			// A chunk ending in a bare ESC is the Escape key itself; terminals
			// deliver whole sequences in a single read.
			if len(pending) == 1 && pending[0] == 0x1b {
				parsed = append(parsed, key.Key{Type: key.KeyEscape})
				pending = pending[:0]
			}
			for _, k := range parsed {
				if !r.enqueue(k) {
					return
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				r.mu.Lock()
				r.err = err
				r.mu.Unlock()
			}
			return
		}
		select {
		case <-r.done:
			return
		default:
		}
	}
}

func (r *Reader) enqueue(k key.Key) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.keys <- k:
	default:
	}
	return true
}

// Split parses as many complete keys as possible from data. The returned
// rest holds a trailing incomplete escape sequence or UTF-8 rune that needs
// more bytes. Unrecognised input is consumed and dropped.
func Split(data []byte) (keys []key.Key, rest []byte) {
	for len(data) > 0 {
		if data[0] == 0x1b {
			if len(data) == 1 {
				return keys, data
			}
			n, k, wait := splitEscape(data)
			if wait {
				return keys, data
			}
			if k.Type != key.KeyUnknown {
				keys = append(keys, k)
			}
			data = data[n:]
			continue
		}

		if !utf8.FullRune(data) {
			if len(data) < utf8.UTFMax {
				return keys, data
			}
			data = data[1:]
			continue
		}

		_, size := utf8.DecodeRune(data)
		if k := key.ParseKey(string(data[:size])); k.Type != key.KeyUnknown {
			keys = append(keys, k)
		}
		data = data[size:]
	}
	return keys, nil
}

// splitEscape consumes one ESC-prefixed sequence; len(data) >= 2.
func splitEscape(data []byte) (consumed int, k key.Key, wait bool) {
	introducer := data[1]
	csi := introducer == '[' || introducer == 'O'

	// ESC [ and ESC O open a sequence; they are never read as Alt+[ or Alt+O.
	shortest := 2
	if csi {
		shortest = 3
	}
	for end := min(len(data), maxSeqLen); end >= shortest; end-- {
		if k := key.ParseKey(string(data[:end])); k.Type != key.KeyUnknown {
			return end, k, false
		}
	}

	if csi {
		// Skip to the CSI/SS3 final byte so parameters are not read as runes.
		for i := 2; i < len(data); i++ {
			if data[i] >= 0x40 && data[i] <= 0x7e {
				return i + 1, key.Key{Type: key.KeyUnknown}, false
			}
		}
		if len(data) < maxSeqLen {
			return 0, key.Key{}, true
		}
		return len(data), key.Key{Type: key.KeyUnknown}, false
	}

	return 1, key.Key{Type: key.KeyEscape}, false
}
