package store

// PageRequest describes a zero-based page index and a page size.
type PageRequest struct {
	Number int
	Size   int
}

// Offset returns the row offset for the page.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is a bounded slice of a result set plus total-count metadata.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int64
}

// TotalPages computes the number of pages needed to hold all matching rows.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalElements / int64(p.Size)
	if p.TotalElements%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

// First reports whether this is the first page.
func (p Page[T]) First() bool {
	return p.Number == 0
}

// Last reports whether this is the last page. An empty result set counts as
// both first and last.
func (p Page[T]) Last() bool {
	return p.Number >= p.TotalPages()-1
}
