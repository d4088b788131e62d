package market

// DefaultHistoryCapacity is the size of the rolling window kept for charts
// and decisions.
const DefaultHistoryCapacity = 100

// History is a fixed-capacity rolling buffer of recent prices. Pushing onto a
// full buffer silently drops the oldest entry. History is not safe for
// concurrent use; the owner serializes access.
type History struct {
	buf   []Price
	size  int
	start int
	count int
}

// NewHistory creates a History holding at most capacity prices.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		buf:  make([]Price, capacity),
		size: capacity,
	}
}

// Push appends p, evicting from the front when the buffer is full.
func (h *History) Push(p Price) {
	if h.count < h.size {
		h.buf[(h.start+h.count)%h.size] = p
		h.count++
		return
	}
	// overwrite oldest
	h.buf[h.start] = p
	h.start = (h.start + 1) % h.size
}

// Latest returns the most recent price, or false if nothing was pushed yet.
func (h *History) Latest() (Price, bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.buf[(h.start+h.count-1)%h.size], true
}

// Points returns the buffered prices oldest first, indexed from 0.
// Returns a copy.
func (h *History) Points() []Point {
	out := make([]Point, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = Point{Index: i, Price: h.buf[(h.start+i)%h.size]}
	}
	return out
}

// Prices returns the buffered prices oldest first, without indexes.
func (h *History) Prices() []Price {
	out := make([]Price, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.start+i)%h.size]
	}
	return out
}

// Len returns the number of buffered prices.
func (h *History) Len() int { return h.count }

// Cap returns the fixed capacity.
func (h *History) Cap() int { return h.size }
