package credibility

import "sync"

// historyRing keeps the last N assessment records in memory.
type historyRing struct {
	mu   sync.Mutex
	buf  []*Result
	next int // overwrite position once full
	size int
}

func newHistoryRing(n int) *historyRing {
	return &historyRing{buf: make([]*Result, 0, n), size: n}
}

func (h *historyRing) add(r *Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buf) < h.size {
		h.buf = append(h.buf, r)
		return
	}
	h.buf[h.next] = r
	h.next = (h.next + 1) % h.size
}

// recent returns up to limit records, newest first. limit <= 0 means all.
func (h *historyRing) recent(limit int) []*Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.buf)
	if limit <= 0 || limit > n {
		limit = n
	}
	newest := n - 1
	if n == h.size {
		newest = (h.next - 1 + h.size) % h.size
	}
	out := make([]*Result, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, h.buf[(newest-i+n)%n])
	}
	return out
}
