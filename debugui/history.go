package debugui

// History is a fixed-size ring of samples, oldest first when read back with
// Ordered.
type History struct {
	samples []float32
	offset  int
	filled  bool
}

func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(1, size))}
}

// Push records v, dropping the oldest sample once full.
func (h *History) Push(v float32) {
	h.samples[h.offset] = v
	h.offset = (h.offset + 1) % len(h.samples)
	if h.offset == 0 {
		h.filled = true
	}
}

// Ordered returns the samples oldest first. Unfilled slots read as zero and
// come first.
func (h *History) Ordered() []float32 {
	out := make([]float32, len(h.samples))
	n := copy(out, h.samples[h.offset:])
	copy(out[n:], h.samples[:h.offset])
	return out
}

// Average returns the mean of the recorded samples.
func (h *History) Average() float32 {
	n := h.offset
	if h.filled {
		n = len(h.samples)
	}
	if n == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples[:n] {
		sum += v
	}
	return sum / float32(n)
}

// Max returns the largest recorded sample.
func (h *History) Max() float32 {
	var m float32
	for _, v := range h.samples {
		m = max(m, v)
	}
	return m
}
