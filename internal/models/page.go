package models

// Pagination limits
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page selects a window of a listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes a requested page
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns how many rows to skip
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the page size
func (p Page) Limit() int {
	return p.Size
}

// Window returns the [start, end) bounds of the page within n items
func (p Page) Window(n int) (int, int) {
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.Size
	if end > n {
		end = n
	}
	return start, end
}
