package task

import "fmt"

// Pages tracks pagination state: how many pages the task list spans and which
// page was requested last.
type Pages struct {
	total   int
	current int
}

// Recompute derives the page count from the number of items.
func (p *Pages) Recompute(items, pageSize int) {
	if pageSize <= 0 || items <= 0 {
		p.total = 0
		return
	}
	p.total = (items + pageSize - 1) / pageSize
}

// SetCurrent selects a page. Pages outside [1, TotalPages] are rejected, so a
// tracker with no pages rejects everything.
func (p *Pages) SetCurrent(page int) error {
	if page < 1 || page > p.total {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, p.total)
	}
	p.current = page
	return nil
}

// TotalPages returns the number of pages.
func (p *Pages) TotalPages() int {
	return p.total
}

// Current returns the most recently selected page (0 before any selection).
func (p *Pages) Current() int {
	return p.current
}
