package renderer

import (
	"go.uber.org/atomic"
)

// Progress counts finished pixels. It is safe for concurrent use.
type Progress struct {
	done  atomic.Int64
	total int64
}

// NewProgress creates a counter for total pixels
func NewProgress(total int) *Progress {
	return &Progress{total: int64(total)}
}

// Add records n more finished pixels and returns the new count
func (p *Progress) Add(n int) int64 {
	return p.done.Add(int64(n))
}

// Done returns the number of finished pixels
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Total returns the number of pixels in the render
func (p *Progress) Total() int64 {
	return p.total
}

// Fraction returns the finished share in [0, 1]
func (p *Progress) Fraction() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.Done()) / float64(p.total)
}
